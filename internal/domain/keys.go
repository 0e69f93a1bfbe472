// Package domain holds shared contracts and errors for the apparel search core.
package domain

// KeyPrefix namespaces all keys written to the catalog store.
const KeyPrefix = "apparel:"
