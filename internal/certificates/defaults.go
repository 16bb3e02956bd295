package certificates

import "path/filepath"

const (
	// DefaultConfigurationDirectoryName is the directory, next to the executable, holding the catalog and certificates.
	DefaultConfigurationDirectoryName = "config"
	// DefaultConfigurationFileName is the catalog file name.
	DefaultConfigurationFileName = "config.ini"
	// DefaultCertificateDirectoryName is the directory containing PKCS#12 files.
	DefaultCertificateDirectoryName = "certs"
	// CertificateFilePrefix starts every certificate file name.
	CertificateFilePrefix = "client-"
	// CertificateFileExtension ends every certificate file name.
	CertificateFileExtension = ".p12"
)

// CertificateFileName returns the file name used for a certificate identifier.
func CertificateFileName(identifier string) string {
	return CertificateFilePrefix + identifier + CertificateFileExtension
}

// CertificatePath returns the certificate file location inside directory.
func CertificatePath(directory string, identifier string) string {
	return filepath.Join(directory, CertificateFileName(identifier))
}
