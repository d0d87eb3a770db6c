// Package script renders the shell scripts pushed to a freshly provisioned
// host. Every interpolated value is single-quoted for the shell, so config
// values can never break out of the surrounding command.
package script

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Kind selects one of the embedded script templates.
type Kind int

const (
	// RootSetup runs once as root after the post-provision restart.
	RootSetup Kind = iota
	// UserSetup is invoked by the root script as the login user.
	UserSetup
	// StartupNote is registered with the provider and runs at first boot;
	// it installs the unit that launches the root script on restart.
	StartupNote
)

// FileName returns the name the script is uploaded or registered under.
func (k Kind) FileName() string {
	switch k {
	case RootSetup:
		return "root-setup.sh"
	case UserSetup:
		return "user-setup.sh"
	case StartupNote:
		return "startup-note.sh"
	}
	return ""
}

func (k Kind) templateName() string {
	return k.FileName() + ".tmpl"
}

// Data is the render input shared by all templates.
type Data struct {
	// User is the login user; scripts and sentinels live in its home.
	User string

	// HostName is assigned to the host by the root script.
	HostName string

	// Packages are installed by the root script, in order.
	Packages []string

	// GitName and GitEmail configure the login user's git identity.
	GitName  string
	GitEmail string

	// WireGuardPrivateKey and WireGuardAddress, when set, configure a
	// wg0 interface on the host.
	WireGuardPrivateKey string
	WireGuardAddress    string
}

var templates = template.Must(template.New("scripts").
	Funcs(template.FuncMap{"sh": quoteShell}).
	ParseFS(templatesFS, "templates/*.tmpl"))

// Render produces the script text for kind from data.
func Render(kind Kind, data Data) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, kind.templateName(), data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", kind.FileName(), err)
	}
	return sb.String(), nil
}

// quoteShell wraps s in single quotes, escaping embedded single quotes so
// the result is always one shell word.
func quoteShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
