package metadata

const (
	keyToken   = "token"
	keyAddress = "address"
	keyServer  = "server"
)

// Session is what a login leaves behind for later invocations.
type Session struct {
	Address string
	Token   string
	Server  string
}
