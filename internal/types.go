package internal

// SessionName identifies the single supervised container within the
// Docker daemon's name namespace.
type SessionName string

// ImageRef is a fully qualified image reference, including the tag.
type ImageRef string

// Command represents arguments forwarded to the container's entrypoint.
type Command []string
