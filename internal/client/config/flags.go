package config

// Flag names shared with the CLI, which binds them as persistent flags.
const (
	FlagConfig        = "config"
	FlagServer        = "server"
	FlagDatabase      = "db"
	FlagKeyFile       = "key"
	FlagTimeout       = "timeout"
	FlagRefreshBefore = "refresh-before"
	FlagLogFile       = "log"
)

// overlayFlags copies into dst the fields of src whose flags were given.
func overlayFlags(dst, src *Config, changed func(name string) bool) {
	if changed(FlagServer) {
		dst.ServerEndpointAddr = src.ServerEndpointAddr
	}
	if changed(FlagDatabase) {
		dst.DatabasePath = src.DatabasePath
	}
	if changed(FlagKeyFile) {
		dst.KeyFile = src.KeyFile
	}
	if changed(FlagTimeout) {
		dst.RequestTimeout = src.RequestTimeout
	}
	if changed(FlagRefreshBefore) {
		dst.RefreshBefore = src.RefreshBefore
	}
	if changed(FlagLogFile) {
		dst.LogFile = src.LogFile
	}
}
