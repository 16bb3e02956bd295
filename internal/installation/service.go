package installation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tyemirov/teaminstall/internal/catalog"
	"github.com/tyemirov/teaminstall/internal/certificates"
	"github.com/tyemirov/teaminstall/internal/certificates/truststore"
	"github.com/tyemirov/teaminstall/internal/shortcuts"
	"github.com/tyemirov/teaminstall/pkg/logging"
)

// ErrMissingFields reports a record that lacks cert_num or password.
var ErrMissingFields = errors.New("cert_num or password not found")

// Status summarizes one installation attempt.
type Status int

const (
	// StatusInstalled means the import tool reported success.
	StatusInstalled Status = iota
	// StatusFailed means the import tool could not import the certificate.
	StatusFailed
	// StatusInvalid means the record was rejected before the import tool ran.
	StatusInvalid
)

func (status Status) String() string {
	switch status {
	case StatusInstalled:
		return "installed"
	case StatusFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// ShortcutCreator writes a login shortcut for an installed certificate.
type ShortcutCreator interface {
	Create(label string, identifier string) (shortcuts.Shortcut, error)
}

// Options are chosen per install action.
type Options struct {
	CreateShortcut bool
}

// Outcome is the result of installing one record.
type Outcome struct {
	Record          catalog.Record
	Status          Status
	CertificatePath string
	Output          string
	Err             error
	Shortcut        shortcuts.Shortcut
	ShortcutErr     error
	Duration        time.Duration
}

// Succeeded reports whether the certificate was imported.
func (outcome Outcome) Succeeded() bool {
	return outcome.Status == StatusInstalled
}

// Message renders the operator notice for the outcome.
func (outcome Outcome) Message() string {
	section := outcome.Record.Section
	switch outcome.Status {
	case StatusInstalled:
		message := fmt.Sprintf("Certificate for section '%s' was installed.", section)
		if outcome.Shortcut.Path != "" {
			message += fmt.Sprintf("\nShortcut created: %s", outcome.Shortcut.Path)
		}
		if outcome.ShortcutErr != nil {
			message += fmt.Sprintf("\nWarning: shortcut was not created: %v", outcome.ShortcutErr)
		}
		return message
	case StatusFailed:
		return fmt.Sprintf("Installing section '%s' failed.\n\nDetails:\n%v", section, outcome.Err)
	default:
		return fmt.Sprintf("Section '%s': %v", section, outcome.Err)
	}
}

// Service installs catalog records one at a time.
type Service struct {
	store             truststore.Store
	shortcutCreator   ShortcutCreator
	certificateFolder string
	logger            *logging.Service
}

// NewService constructs a Service. A nil shortcutCreator disables shortcut creation.
func NewService(store truststore.Store, shortcutCreator ShortcutCreator, certificateFolder string, logger *logging.Service) (*Service, error) {
	if store == nil {
		return nil, errors.New("installation service requires a certificate store")
	}
	if logger == nil {
		return nil, errors.New("installation service requires a logger")
	}
	return &Service{
		store:             store,
		shortcutCreator:   shortcutCreator,
		certificateFolder: certificateFolder,
		logger:            logger,
	}, nil
}

// CertificatePath returns where the certificate file of record is expected.
func (service *Service) CertificatePath(record catalog.Record) string {
	return certificates.CertificatePath(service.certificateFolder, strings.TrimSpace(record.Identifier))
}

// Install validates, imports and optionally creates the shortcut for a single record.
func (service *Service) Install(ctx context.Context, record catalog.Record, options Options) Outcome {
	startedAt := time.Now()
	outcome := Outcome{Record: record}
	sectionField := logging.String("section", record.Section)

	missingFields := record.MissingFields()
	if len(missingFields) > 0 {
		outcome.Status = StatusInvalid
		outcome.Err = fmt.Errorf("%w: missing %s", ErrMissingFields, strings.Join(missingFields, ", "))
		outcome.Duration = time.Since(startedAt)
		service.logger.Error("certificate record rejected", outcome.Err, sectionField, logging.Strings("missing", missingFields))
		return outcome
	}

	outcome.CertificatePath = service.CertificatePath(record)
	service.logger.Info("importing certificate",
		sectionField,
		logging.String("certificate", outcome.CertificatePath),
		logging.Secret("password"),
	)
	importResult, importErr := service.store.Import(ctx, outcome.CertificatePath, strings.TrimSpace(record.Password))
	if importErr != nil {
		outcome.Status = StatusFailed
		outcome.Err = importErr
		outcome.Duration = time.Since(startedAt)
		fields := []logging.Field{sectionField, logging.Duration("duration", outcome.Duration)}
		var typedErr *truststore.ImportError
		if errors.As(importErr, &typedErr) {
			fields = append(fields, logging.String("kind", typedErr.Kind.String()), logging.Int("exit_code", typedErr.ExitCode))
		}
		service.logger.Error("certificate import failed", importErr, fields...)
		return outcome
	}
	outcome.Status = StatusInstalled
	outcome.Output = importResult.Output

	if options.CreateShortcut && service.shortcutCreator != nil {
		shortcut, shortcutErr := service.shortcutCreator.Create(record.DisplayLabel(), strings.TrimSpace(record.Identifier))
		if shortcutErr != nil {
			outcome.ShortcutErr = shortcutErr
			service.logger.Warn("shortcut not created", shortcutErr, sectionField)
		} else {
			outcome.Shortcut = shortcut
			service.logger.Info("shortcut created",
				sectionField,
				logging.String("path", shortcut.Path),
				logging.String("url", shortcut.URL),
				logging.Bool("replaced", shortcut.Replaced),
			)
		}
	}
	outcome.Duration = time.Since(startedAt)
	service.logger.Info("certificate installed", sectionField, logging.Duration("duration", outcome.Duration))
	return outcome
}

// InstallAll installs records in order. report, when set, receives each outcome as soon as it is known.
func (service *Service) InstallAll(ctx context.Context, records []catalog.Record, options Options, report func(Outcome)) []Outcome {
	outcomes := make([]Outcome, 0, len(records))
	for _, record := range records {
		outcome := service.Install(ctx, record, options)
		outcomes = append(outcomes, outcome)
		if report != nil {
			report(outcome)
		}
	}
	return outcomes
}

// ConfirmationText lists the records about to be installed.
func ConfirmationText(records []catalog.Record) string {
	labels := make([]string, 0, len(records))
	for _, record := range records {
		labels = append(labels, record.DisplayLabel())
	}
	return "Install the following certificates?\n\n- " + strings.Join(labels, "\n- ")
}
