package installation

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tyemirov/teaminstall/internal/catalog"
	"github.com/tyemirov/teaminstall/internal/certificates/truststore"
	"github.com/tyemirov/teaminstall/internal/shortcuts"
	"github.com/tyemirov/teaminstall/pkg/logging"
)

type importCall struct {
	certificatePath string
	password        string
}

type recordingStore struct {
	calls  []importCall
	errors map[string]error
}

func (store *recordingStore) Import(ctx context.Context, certificatePath string, password string) (truststore.ImportResult, error) {
	store.calls = append(store.calls, importCall{certificatePath: certificatePath, password: password})
	if importErr, found := store.errors[certificatePath]; found {
		return truststore.ImportResult{}, importErr
	}
	return truststore.ImportResult{Output: "completed successfully"}, nil
}

type shortcutCall struct {
	label      string
	identifier string
}

type recordingShortcutCreator struct {
	calls []shortcutCall
	err   error
}

func (creator *recordingShortcutCreator) Create(label string, identifier string) (shortcuts.Shortcut, error) {
	creator.calls = append(creator.calls, shortcutCall{label: label, identifier: identifier})
	if creator.err != nil {
		return shortcuts.Shortcut{}, creator.err
	}
	return shortcuts.Shortcut{Path: filepath.Join("Desktop", "Team_"+label+".url"), URL: shortcuts.BuildURL(shortcuts.DefaultBaseURL, identifier, shortcuts.DefaultRoute)}, nil
}

func newTestService(t *testing.T, store truststore.Store, creator ShortcutCreator) *Service {
	t.Helper()
	service, err := NewService(store, creator, filepath.Join("config", "certs"), logging.NewTestService(logging.TypeConsole))
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return service
}

func TestServiceInstall(t *testing.T) {
	exitErr := &truststore.ImportError{Kind: truststore.KindExitStatus, Tool: "certutil", ExitCode: 1, Detail: "bad password"}
	failingPath := filepath.Join("config", "certs", "client-9.p12")

	testCases := []struct {
		name              string
		record            catalog.Record
		options           Options
		shortcutErr       error
		expectedStatus    Status
		expectedImports   int
		expectedShortcuts int
		expectedErr       error
		expectShortcutErr bool
	}{
		{
			name:              "installs and creates shortcut",
			record:            catalog.Record{Section: "Office DB1", Identifier: "7", HasIdentifier: true, Password: "pw", Label: "Office"},
			options:           Options{CreateShortcut: true},
			expectedStatus:    StatusInstalled,
			expectedImports:   1,
			expectedShortcuts: 1,
		},
		{
			name:            "installs without shortcut when disabled",
			record:          catalog.Record{Section: "Office DB1", Identifier: "7", HasIdentifier: true, Password: "pw"},
			expectedStatus:  StatusInstalled,
			expectedImports: 1,
		},
		{
			name:           "missing password never runs the import",
			record:         catalog.Record{Section: "No Password", Identifier: "3", HasIdentifier: true},
			options:        Options{CreateShortcut: true},
			expectedStatus: StatusInvalid,
			expectedErr:    ErrMissingFields,
		},
		{
			name:           "blank identifier never runs the import",
			record:         catalog.Record{Section: "Blank", Identifier: "  ", HasIdentifier: true, Password: "pw"},
			expectedStatus: StatusInvalid,
			expectedErr:    ErrMissingFields,
		},
		{
			name:            "failed import creates no shortcut",
			record:          catalog.Record{Section: "Broken", Identifier: "9", HasIdentifier: true, Password: "pw"},
			options:         Options{CreateShortcut: true},
			expectedStatus:  StatusFailed,
			expectedImports: 1,
			expectedErr:     exitErr,
		},
		{
			name:              "shortcut failure is only a warning",
			record:            catalog.Record{Section: "Office DB2", Identifier: "8", HasIdentifier: true, Password: "pw"},
			options:           Options{CreateShortcut: true},
			shortcutErr:       errors.New("desktop is read-only"),
			expectedStatus:    StatusInstalled,
			expectedImports:   1,
			expectedShortcuts: 1,
			expectShortcutErr: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testingT *testing.T) {
			store := &recordingStore{errors: map[string]error{failingPath: exitErr}}
			creator := &recordingShortcutCreator{err: testCase.shortcutErr}
			service := newTestService(testingT, store, creator)

			outcome := service.Install(context.Background(), testCase.record, testCase.options)
			if outcome.Status != testCase.expectedStatus {
				testingT.Fatalf("expected status %s, got %s", testCase.expectedStatus, outcome.Status)
			}
			if len(store.calls) != testCase.expectedImports {
				testingT.Fatalf("expected %d imports, got %d", testCase.expectedImports, len(store.calls))
			}
			if len(creator.calls) != testCase.expectedShortcuts {
				testingT.Fatalf("expected %d shortcuts, got %d", testCase.expectedShortcuts, len(creator.calls))
			}
			if testCase.expectedErr != nil && !errors.Is(outcome.Err, testCase.expectedErr) {
				testingT.Fatalf("expected error %v, got %v", testCase.expectedErr, outcome.Err)
			}
			if testCase.expectedErr == nil && outcome.Err != nil {
				testingT.Fatalf("unexpected error %v", outcome.Err)
			}
			if testCase.expectShortcutErr != (outcome.ShortcutErr != nil) {
				testingT.Fatalf("unexpected shortcut error %v", outcome.ShortcutErr)
			}
			if outcome.Status == StatusInvalid && strings.Count(outcome.Message(), testCase.record.Section) != 1 {
				testingT.Fatalf("expected message to name the section once, got %q", outcome.Message())
			}
		})
	}
}

func TestServiceInstallPassesCertificatePathAndPassword(t *testing.T) {
	store := &recordingStore{}
	creator := &recordingShortcutCreator{}
	service := newTestService(t, store, creator)

	outcome := service.Install(context.Background(), catalog.Record{Section: "Office", Identifier: " 7 ", HasIdentifier: true, Password: " pw "}, Options{CreateShortcut: true})
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %v", outcome.Err)
	}
	expectedPath := filepath.Join("config", "certs", "client-7.p12")
	if store.calls[0].certificatePath != expectedPath || store.calls[0].password != "pw" {
		t.Fatalf("unexpected import call %+v", store.calls[0])
	}
	if creator.calls[0].label != "Office" || creator.calls[0].identifier != "7" {
		t.Fatalf("unexpected shortcut call %+v", creator.calls[0])
	}
	if outcome.Shortcut.URL != "https://care1.allm-team.net/7/CareUiAuth/login" {
		t.Fatalf("unexpected shortcut url %s", outcome.Shortcut.URL)
	}
}

func TestServiceInstallAllContinuesAfterFailures(t *testing.T) {
	store := &recordingStore{errors: map[string]error{
		filepath.Join("config", "certs", "client-2.p12"): &truststore.ImportError{Kind: truststore.KindToolNotFound, Tool: "certutil"},
	}}
	service := newTestService(t, store, nil)
	records := []catalog.Record{
		{Section: "First", Identifier: "1", HasIdentifier: true, Password: "a"},
		{Section: "Second", Identifier: "2", HasIdentifier: true, Password: "b"},
		{Section: "Third", Identifier: "3", HasIdentifier: true},
		{Section: "Fourth", Identifier: "4", HasIdentifier: true, Password: "d"},
	}

	reported := []string{}
	outcomes := service.InstallAll(context.Background(), records, Options{CreateShortcut: true}, func(outcome Outcome) {
		reported = append(reported, outcome.Record.Section+":"+outcome.Status.String())
	})
	expected := []string{"First:installed", "Second:failed", "Third:invalid", "Fourth:installed"}
	if strings.Join(reported, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected %v, got %v", expected, reported)
	}
	if len(outcomes) != len(records) {
		t.Fatalf("expected %d outcomes, got %d", len(records), len(outcomes))
	}
	if len(store.calls) != 3 {
		t.Fatalf("expected three imports, got %d", len(store.calls))
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, nil, "", logging.NewTestService(logging.TypeConsole)); err == nil {
		t.Fatalf("expected error without store")
	}
	if _, err := NewService(&recordingStore{}, nil, "", nil); err == nil {
		t.Fatalf("expected error without logger")
	}
}

func TestConfirmationTextListsDisplayLabels(t *testing.T) {
	text := ConfirmationText([]catalog.Record{{Section: "A", Label: "Alpha"}, {Section: "B"}})
	if text != "Install the following certificates?\n\n- Alpha\n- B" {
		t.Fatalf("unexpected confirmation text %q", text)
	}
}
