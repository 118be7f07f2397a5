package types

// ContextUserKey is the gin context key the auth middleware stores the
// resolved identity under.
const ContextUserKey = "user"
