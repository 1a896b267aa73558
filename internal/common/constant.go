package common

// AuthorizationHeaderName carries the bearer credential on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the credential inside the Authorization header.
const BearerPrefix = "Bearer "

// DefaultDeletedPageSize is the number of items returned per deleted-log page.
const DefaultDeletedPageSize = 5
