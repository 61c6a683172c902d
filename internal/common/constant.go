package common

// Well-known keys of the local key/value store.
const (
	ProjectsKey     = "neo_projects"
	PostsKey        = "neo_posts"
	SystemConfigKey = "neo_system_config"
)

// Remote collection names.
const (
	ProjectsCollection = "projects"
	PostsCollection    = "posts"
)

// APIKeyHeaderName carries the remote data API key on outbound requests.
const APIKeyHeaderName = "api-key"
