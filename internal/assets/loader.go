package assets

// StyleLoader defines the contract for loading CSS styles.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type StyleLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidStyleName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
