// Package composer provides rules for composer.json and composer.lock.
package composer

const (
	manifestFile = "composer.json"
	lockFile     = "composer.lock"
)
