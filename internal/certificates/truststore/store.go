package truststore

import (
	"context"
	"fmt"
	"runtime"

	"github.com/tyemirov/teaminstall/internal/certificates"
)

const (
	// DefaultImportTool is the Windows certificate utility.
	DefaultImportTool = "certutil"
)

// Store imports PKCS#12 client certificates into the current user's personal store.
type Store interface {
	Import(ctx context.Context, certificatePath string, password string) (ImportResult, error)
}

// ImportResult carries what the import tool reported on success.
type ImportResult struct {
	Output string
}

// Configuration controls store behavior.
type Configuration struct {
	Tool string
}

type storeFactory func(commandRunner certificates.CommandRunner, configuration Configuration) (Store, error)

var supportedFactories = map[string]storeFactory{
	"windows": newCertutilStore,
}

// NewStore constructs the Store for the running operating system.
func NewStore(commandRunner certificates.CommandRunner, configuration Configuration) (Store, error) {
	return newStoreForSystem(runtime.GOOS, commandRunner, configuration)
}

func newStoreForSystem(operatingSystem string, commandRunner certificates.CommandRunner, configuration Configuration) (Store, error) {
	factory, found := supportedFactories[operatingSystem]
	if !found {
		return nil, fmt.Errorf("unsupported operating system %s", operatingSystem)
	}
	return factory(commandRunner, configuration)
}
