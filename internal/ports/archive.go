package ports

// Extractor unpacks a downloaded archive into a directory, creating it
// if needed. Existing files are overwritten.
type Extractor interface {
	Extract(archivePath string, destDir string) error
}
