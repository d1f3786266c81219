package domain

// KeyPrefix namespaces all storage keys.
const KeyPrefix = "alsobought:"
