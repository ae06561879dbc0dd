// Package pathutils normalizes filesystem paths read from configuration.
package pathutils
