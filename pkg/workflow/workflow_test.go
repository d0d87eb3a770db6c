package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sacenv/sacenv/pkg/env"
	"github.com/sacenv/sacenv/pkg/sacloud"
	"github.com/sacenv/sacenv/pkg/script"
)

const (
	fakeRouterID = "201"
	fakeSwitchID = "301"
	fakeServerID = "401"
	fakeDiskID   = "501"
	fakeKeyID    = "601"
	fakeNoteID   = "701"
	fakeArchive  = "801"

	fakeGlobalIP   = "203.0.113.10"
	fakeOperatorIP = "198.51.100.99"
)

// fakeProvider is an in-memory rendition of the provider API, just enough
// for the update and clean workflows. One resource per kind, fixed ids.
type fakeProvider struct {
	t *testing.T

	routerExists    bool
	routerUp        bool
	routerConnected bool
	switchExists    bool
	serverExists    bool
	serverUp        bool
	serverConnected bool
	diskExists      bool
	keyExists       bool
	keyMaterial     string
	noteExists      bool
	noteContent     string

	requests     []string
	settingsPuts []map[string]any
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func (p *fakeProvider) applianceJSON() map[string]any {
	status := "down"
	if p.routerUp {
		status = "up"
	}
	return map[string]any{
		"ID":           fakeRouterID,
		"Name":         "dev-vpc-router",
		"Class":        "vpcrouter",
		"Availability": "available",
		"Instance":     map[string]any{"Status": status},
		"Interfaces":   []any{map[string]any{"IPAddress": fakeGlobalIP}},
	}
}

func (p *fakeProvider) switchJSON() map[string]any {
	return map[string]any{"ID": fakeSwitchID, "Name": "dev-switch", "Availability": "available"}
}

func (p *fakeProvider) serverJSON() map[string]any {
	status := "down"
	if p.serverUp {
		status = "up"
	}
	return map[string]any{
		"ID":           fakeServerID,
		"Name":         "dev-server",
		"HostName":     "dev-server",
		"Availability": "available",
		"Instance":     map[string]any{"Status": status},
	}
}

func (p *fakeProvider) diskJSON() map[string]any {
	return map[string]any{"ID": fakeDiskID, "Name": "dev-server", "Availability": "available"}
}

func (p *fakeProvider) keyJSON() map[string]any {
	return map[string]any{"ID": fakeKeyID, "Name": "dev-pub-key", "PublicKey": p.keyMaterial}
}

func (p *fakeProvider) noteJSON() map[string]any {
	return map[string]any{"ID": fakeNoteID, "Name": "dev-setup-script", "Class": "shell", "Content": p.noteContent}
}

func (p *fakeProvider) archiveJSON() map[string]any {
	return map[string]any{"ID": fakeArchive, "Name": "Ubuntu Server 22.04", "Availability": "available"}
}

func (p *fakeProvider) writeList(w http.ResponseWriter, plural string, items ...map[string]any) {
	body := map[string]any{
		"Total": len(items),
		"From":  0,
		"Count": len(items),
		plural:  items,
	}
	w.Write(mustJSON(p.t, body))
}

func (p *fakeProvider) writeResource(w http.ResponseWriter, key string, item map[string]any) {
	w.Write(mustJSON(p.t, map[string]any{"is_ok": true, key: item}))
}

func (p *fakeProvider) writeOK(w http.ResponseWriter) {
	w.Write([]byte(`{"is_ok": true}`))
}

func (p *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.requests = append(p.requests, r.Method+" "+r.URL.Path)
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodGet && len(parts) == 1:
		p.handleSearch(w, parts[0])
	case r.Method == http.MethodGet && len(parts) == 3 && parts[0] == "switch":
		p.handleConnected(w, parts[2])
	case r.Method == http.MethodGet && len(parts) == 2:
		p.handleFetch(w, parts[0])
	case r.Method == http.MethodPost && len(parts) == 1:
		p.handleCreate(w, r, parts[0])
	case r.Method == http.MethodPost && len(parts) == 3 && parts[2] == "power":
		p.handlePower(w, parts[0], true)
	case r.Method == http.MethodDelete && len(parts) == 3 && parts[2] == "power":
		p.handlePower(w, parts[0], false)
	case r.Method == http.MethodDelete && len(parts) == 2:
		p.handleDelete(w, parts[0])
	case r.Method == http.MethodPut:
		p.handleUpdate(w, r, parts)
	default:
		p.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakeProvider) handleSearch(w http.ResponseWriter, kind string) {
	switch kind {
	case "appliance":
		if p.routerExists {
			p.writeList(w, "Appliances", p.applianceJSON())
		} else {
			p.writeList(w, "Appliances")
		}
	case "switch":
		if p.switchExists {
			p.writeList(w, "Switches", p.switchJSON())
		} else {
			p.writeList(w, "Switches")
		}
	case "server":
		if p.serverExists {
			p.writeList(w, "Servers", p.serverJSON())
		} else {
			p.writeList(w, "Servers")
		}
	case "disk":
		if p.diskExists {
			p.writeList(w, "Disks", p.diskJSON())
		} else {
			p.writeList(w, "Disks")
		}
	case "sshkey":
		if p.keyExists {
			p.writeList(w, "SSHKeys", p.keyJSON())
		} else {
			p.writeList(w, "SSHKeys")
		}
	case "note":
		if p.noteExists {
			p.writeList(w, "Notes", p.noteJSON())
		} else {
			p.writeList(w, "Notes")
		}
	case "archive":
		p.writeList(w, "Archives", p.archiveJSON())
	default:
		p.t.Errorf("unexpected search kind %s", kind)
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakeProvider) handleConnected(w http.ResponseWriter, kind string) {
	switch kind {
	case "appliance":
		if p.routerConnected {
			p.writeList(w, "Appliances", p.applianceJSON())
		} else {
			p.writeList(w, "Appliances")
		}
	case "server":
		if p.serverConnected {
			p.writeList(w, "Servers", p.serverJSON())
		} else {
			p.writeList(w, "Servers")
		}
	default:
		p.t.Errorf("unexpected connected listing for %s", kind)
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakeProvider) handleFetch(w http.ResponseWriter, kind string) {
	switch {
	case kind == "appliance" && p.routerExists:
		p.writeResource(w, "Appliance", p.applianceJSON())
	case kind == "switch" && p.switchExists:
		p.writeResource(w, "Switch", p.switchJSON())
	case kind == "server" && p.serverExists:
		p.writeResource(w, "Server", p.serverJSON())
	case kind == "disk" && p.diskExists:
		p.writeResource(w, "Disk", p.diskJSON())
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakeProvider) handleCreate(w http.ResponseWriter, r *http.Request, kind string) {
	w.WriteHeader(http.StatusCreated)
	switch kind {
	case "appliance":
		p.routerExists = true
		p.writeResource(w, "Appliance", p.applianceJSON())
	case "switch":
		p.switchExists = true
		p.writeResource(w, "Switch", p.switchJSON())
	case "server":
		p.serverExists = true
		p.serverConnected = true
		p.writeResource(w, "Server", p.serverJSON())
	case "disk":
		p.diskExists = true
		p.writeResource(w, "Disk", p.diskJSON())
	case "sshkey":
		var body struct {
			SSHKey struct {
				PublicKey string `json:"PublicKey"`
			} `json:"SSHKey"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		p.keyExists = true
		p.keyMaterial = body.SSHKey.PublicKey
		p.writeResource(w, "SSHKey", p.keyJSON())
	case "note":
		var body struct {
			Note struct {
				Content string `json:"Content"`
			} `json:"Note"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		p.noteExists = true
		p.noteContent = body.Note.Content
		p.writeResource(w, "Note", p.noteJSON())
	default:
		p.t.Errorf("unexpected create kind %s", kind)
	}
}

func (p *fakeProvider) handlePower(w http.ResponseWriter, kind string, on bool) {
	switch kind {
	case "appliance":
		p.routerUp = on
	case "server":
		p.serverUp = on
	default:
		p.t.Errorf("unexpected power request for %s", kind)
	}
	p.writeOK(w)
}

func (p *fakeProvider) handleDelete(w http.ResponseWriter, kind string) {
	switch kind {
	case "appliance":
		p.routerExists = false
	case "switch":
		p.switchExists = false
	case "server":
		p.serverExists = false
	case "disk":
		p.diskExists = false
	default:
		p.t.Errorf("unexpected delete kind %s", kind)
	}
	p.writeOK(w)
}

func (p *fakeProvider) handleUpdate(w http.ResponseWriter, r *http.Request, parts []string) {
	path := strings.Join(parts, "/")
	switch {
	case path == "appliance/"+fakeRouterID:
		var body struct {
			Appliance struct {
				Settings map[string]any `json:"Settings"`
			} `json:"Appliance"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		p.settingsPuts = append(p.settingsPuts, body.Appliance.Settings)
	case path == "appliance/"+fakeRouterID+"/config":
	case strings.HasPrefix(path, "appliance/"+fakeRouterID+"/interface/"):
		p.routerConnected = true
	case path == "note/"+fakeNoteID:
		var body struct {
			Note struct {
				Content string `json:"Content"`
			} `json:"Note"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		p.noteContent = body.Note.Content
	default:
		p.t.Errorf("unexpected update %s", path)
	}
	p.writeOK(w)
}

// converged puts every piece of equipment in place, powered and connected,
// with the registered note already matching the rendered startup script.
func (p *fakeProvider) converged(t *testing.T, data script.Data) {
	t.Helper()
	content, err := script.Render(script.StartupNote, data)
	if err != nil {
		t.Fatalf("render startup note: %v", err)
	}
	p.routerExists = true
	p.routerUp = true
	p.routerConnected = true
	p.switchExists = true
	p.serverExists = true
	p.serverUp = true
	p.serverConnected = true
	p.diskExists = true
	p.keyExists = true
	p.keyMaterial = "ssh-ed25519 AAAA dev"
	p.noteExists = true
	p.noteContent = content
}

func (p *fakeProvider) requestsMatching(prefix string) []string {
	var out []string
	for _, req := range p.requests {
		if strings.HasPrefix(req, prefix) {
			out = append(out, req)
		}
	}
	return out
}

// firewallEnabled digs the Enabled flag out of one recorded settings PUT.
func firewallEnabled(t *testing.T, settings map[string]any) string {
	t.Helper()
	router, ok := settings["Router"].(map[string]any)
	if !ok {
		t.Fatal("settings missing Router block")
	}
	fw, ok := router["Firewall"].(map[string]any)
	if !ok {
		t.Fatal("settings missing Firewall block")
	}
	enabled, ok := fw["Enabled"].(string)
	if !ok {
		t.Fatalf("Firewall Enabled is %T, want string", fw["Enabled"])
	}
	return enabled
}

type fakeBootstrap struct {
	prepareErr error
	waitErr    error
	prepared   bool
	waited     bool
}

func (b *fakeBootstrap) Prepare(ctx context.Context) error {
	b.prepared = true
	return b.prepareErr
}

func (b *fakeBootstrap) WaitForDone(ctx context.Context) error {
	b.waited = true
	return b.waitErr
}

type testHarness struct {
	provider  *fakeProvider
	engine    *Engine
	bootstrap *fakeBootstrap
	bootHost  string
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	provider := &fakeProvider{t: t}
	ts := httptest.NewServer(provider)
	t.Cleanup(ts.Close)

	client, err := sacloud.NewClient(
		sacloud.Credentials{AccessToken: "a", SecretToken: "s", BaseURL: ts.URL},
		sacloud.WithPollInterval(time.Millisecond, time.Millisecond),
		sacloud.WithWaitTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	environment := env.New(client, "dev", env.WithPublicIPFunc(
		func(ctx context.Context) (string, bool) { return fakeOperatorIP, true },
	))

	h := &testHarness{provider: provider, bootstrap: &fakeBootstrap{}}
	h.engine = NewEngine(environment, testScriptData(), func(host string) Bootstrap {
		h.bootHost = host
		return h.bootstrap
	})
	return h
}

func testScriptData() script.Data {
	return script.Data{User: "ubuntu", HostName: "dev-server"}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestUpdateConvergedEnvironmentCreatesNothing(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())

	if err := h.engine.Update(context.Background(), UpdateParams{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if posts := h.provider.requestsMatching("POST"); len(posts) != 0 {
		t.Errorf("converged run must not create anything, got %v", posts)
	}
	if dels := h.provider.requestsMatching("DELETE"); len(dels) != 0 {
		t.Errorf("converged run must not delete anything, got %v", dels)
	}
	for _, req := range h.provider.requestsMatching("PUT") {
		if !strings.HasPrefix(req, "PUT /appliance/"+fakeRouterID) {
			t.Errorf("unexpected mutation %s", req)
		}
	}

	if h.bootHost != fakeGlobalIP {
		t.Errorf("bootstrap aimed at %q, want %q", h.bootHost, fakeGlobalIP)
	}
	if !h.bootstrap.prepared || !h.bootstrap.waited {
		t.Error("bootstrap phases not both run")
	}

	if len(h.provider.settingsPuts) != 2 {
		t.Fatalf("expected 2 firewall settings updates, got %d", len(h.provider.settingsPuts))
	}
	if got := firewallEnabled(t, h.provider.settingsPuts[0]); got != "False" {
		t.Errorf("first settings update must disable the firewall, got %s", got)
	}
	if got := firewallEnabled(t, h.provider.settingsPuts[1]); got != "True" {
		t.Errorf("final settings update must re-enable the firewall, got %s", got)
	}
}

func TestUpdateCreatesMissingEquipment(t *testing.T) {
	h := newHarness(t)

	params := UpdateParams{PublicKey: "ssh-ed25519 AAAA dev"}
	if err := h.engine.Update(context.Background(), params); err != nil {
		t.Fatalf("update: %v", err)
	}

	p := h.provider
	if !p.routerExists || !p.switchExists || !p.serverExists || !p.diskExists || !p.keyExists || !p.noteExists {
		t.Error("not all equipment was created")
	}
	if !p.routerConnected {
		t.Error("switch was not connected to the vpc router")
	}
	if !p.routerUp || !p.serverUp {
		t.Error("powered resources were not brought up")
	}
	if p.keyMaterial != params.PublicKey {
		t.Errorf("registered key %q, want %q", p.keyMaterial, params.PublicKey)
	}
	if !h.bootstrap.prepared || !h.bootstrap.waited {
		t.Error("bootstrap phases not both run")
	}

	// Creation order follows the dependency chain.
	var createOrder []string
	for _, req := range p.requestsMatching("POST") {
		if !strings.HasSuffix(req, "/power") {
			createOrder = append(createOrder, req)
		}
	}
	want := []string{
		"POST /appliance",
		"POST /switch",
		"POST /note",
		"POST /server",
		"POST /sshkey",
		"POST /disk",
	}
	if len(createOrder) != len(want) {
		t.Fatalf("expected creates %v, got %v", want, createOrder)
	}
	for i := range want {
		if createOrder[i] != want[i] {
			t.Errorf("create %d: expected %s, got %s", i, want[i], createOrder[i])
		}
	}
}

func TestUpdateRequiresLoginMethod(t *testing.T) {
	h := newHarness(t)

	err := h.engine.Update(context.Background(), UpdateParams{})
	if !errors.Is(err, ErrLoginMethodRequired) {
		t.Fatalf("expected ErrLoginMethodRequired, got %v", err)
	}
	for _, prefix := range []string{"POST", "PUT", "DELETE"} {
		if reqs := h.provider.requestsMatching(prefix); len(reqs) != 0 {
			t.Errorf("no mutation may precede the login check, got %v", reqs)
		}
	}
}

func TestUpdateSwitchNotConnectedIsFatal(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())
	h.provider.routerConnected = false

	err := h.engine.Update(context.Background(), UpdateParams{})
	var nce *SwitchNotConnectedError
	if !errors.As(err, &nce) {
		t.Fatalf("expected SwitchNotConnectedError, got %v", err)
	}
	if nce.SwitchID.String() != fakeSwitchID {
		t.Errorf("error names switch %s, want %s", nce.SwitchID, fakeSwitchID)
	}
	for _, prefix := range []string{"POST", "PUT", "DELETE"} {
		if reqs := h.provider.requestsMatching(prefix); len(reqs) != 0 {
			t.Errorf("topology mismatch must stop the run, got mutations %v", reqs)
		}
	}
}

func TestUpdateServerNotConnectedIsFatal(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())
	h.provider.serverConnected = false

	err := h.engine.Update(context.Background(), UpdateParams{})
	var nce *ServerNotConnectedError
	if !errors.As(err, &nce) {
		t.Fatalf("expected ServerNotConnectedError, got %v", err)
	}
	if h.bootstrap.prepared {
		t.Error("bootstrap must not run after a topology mismatch")
	}
}

func TestUpdateSSHKeyMismatchIsFatal(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())
	h.provider.diskExists = false
	h.provider.keyMaterial = "ssh-ed25519 REGISTERED old"

	err := h.engine.Update(context.Background(), UpdateParams{PublicKey: "ssh-ed25519 SUPPLIED new"})
	var kme *SSHKeyMismatchError
	if !errors.As(err, &kme) {
		t.Fatalf("expected SSHKeyMismatchError, got %v", err)
	}
	if h.provider.diskExists {
		t.Error("disk must not be created with mismatched key material")
	}
	if h.provider.keyMaterial != "ssh-ed25519 REGISTERED old" {
		t.Error("registered key must never be replaced")
	}
}

func TestUpdateReusesRegisteredKeyWithoutSuppliedMaterial(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())
	h.provider.diskExists = false

	// Password keeps the login check satisfied without key material.
	if err := h.engine.Update(context.Background(), UpdateParams{Password: "hunter2hunter2"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !h.provider.diskExists {
		t.Error("disk was not created")
	}
	if len(h.provider.requestsMatching("POST /sshkey")) != 0 {
		t.Error("registered key must be reused, not re-created")
	}
}

func TestUpdateReconcilesDriftedNote(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())
	h.provider.noteContent = "#!/bin/sh\necho stale\n"

	if err := h.engine.Update(context.Background(), UpdateParams{}); err != nil {
		t.Fatalf("update: %v", err)
	}

	want, err := script.Render(script.StartupNote, testScriptData())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if h.provider.noteContent != want {
		t.Error("drifted note content was not rewritten")
	}
	if len(h.provider.requestsMatching("POST /note")) != 0 {
		t.Error("note must be rewritten in place, not re-created")
	}
}

func TestUpdateReclosesFirewallOnBootstrapFailure(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())
	h.bootstrap.prepareErr = errors.New("host unreachable")

	err := h.engine.Update(context.Background(), UpdateParams{})
	if !errors.Is(err, h.bootstrap.prepareErr) {
		t.Fatalf("expected bootstrap error, got %v", err)
	}

	if n := len(h.provider.settingsPuts); n != 2 {
		t.Fatalf("expected 2 settings updates, got %d", n)
	}
	if got := firewallEnabled(t, h.provider.settingsPuts[1]); got != "True" {
		t.Errorf("firewall must be re-enabled after a failed bootstrap, got %s", got)
	}
}

func TestWithFirewallOpenReclosesOnPanic(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())

	routerID := sacloud.ApplianceID{ID: sacloud.StringID(fakeRouterID)}
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected the panic to propagate")
			}
		}()
		_ = h.engine.withFirewallOpen(context.Background(), testLogger(), routerID,
			func(ctx context.Context) error { panic("bootstrap exploded") })
	}()

	if n := len(h.provider.settingsPuts); n != 2 {
		t.Fatalf("expected 2 settings updates, got %d", n)
	}
	if got := firewallEnabled(t, h.provider.settingsPuts[1]); got != "True" {
		t.Errorf("firewall must be re-enabled after a panic, got %s", got)
	}
}

func TestCleanTearsDownInOrder(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())

	if err := h.engine.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}

	p := h.provider
	if p.routerExists || p.switchExists || p.serverExists || p.diskExists {
		t.Error("not all equipment was deleted")
	}
	if !p.keyExists {
		t.Error("registered ssh key must survive teardown")
	}
	if !p.noteExists {
		t.Error("setup note must survive teardown")
	}

	want := []string{
		"DELETE /appliance/" + fakeRouterID + "/power",
		"DELETE /appliance/" + fakeRouterID,
		"DELETE /switch/" + fakeSwitchID,
		"DELETE /server/" + fakeServerID + "/power",
		"DELETE /server/" + fakeServerID,
		"DELETE /disk/" + fakeDiskID,
	}
	got := p.requestsMatching("DELETE")
	if len(got) != len(want) {
		t.Fatalf("expected deletes %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delete %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestCleanSkipsPowerOffForStoppedResources(t *testing.T) {
	h := newHarness(t)
	h.provider.converged(t, testScriptData())
	h.provider.routerUp = false
	h.provider.serverUp = false

	if err := h.engine.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	for _, req := range h.provider.requestsMatching("DELETE") {
		if strings.HasSuffix(req, "/power") {
			t.Errorf("stopped resource must not be powered off again: %s", req)
		}
	}
}

func TestCleanEmptyEnvironment(t *testing.T) {
	h := newHarness(t)

	if err := h.engine.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	for _, prefix := range []string{"POST", "PUT", "DELETE"} {
		if reqs := h.provider.requestsMatching(prefix); len(reqs) != 0 {
			t.Errorf("empty environment must not be mutated, got %v", reqs)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "switch not connected",
			err: &SwitchNotConnectedError{
				SwitchID:    sacloud.SwitchID{ID: sacloud.StringID("301")},
				VpcRouterID: sacloud.ApplianceID{ID: sacloud.StringID("201")},
			},
			want: "301",
		},
		{
			name: "key mismatch",
			err: &SSHKeyMismatchError{
				KeyID:      sacloud.SSHKeyID{ID: sacloud.StringID("601")},
				Registered: "a",
				Supplied:   "b",
			},
			want: "does not match",
		},
		{
			name: "router address missing",
			err:  &RouterAddressMissingError{VpcRouterID: sacloud.ApplianceID{ID: sacloud.StringID("201")}},
			want: "201",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := tt.err.Error(); !strings.Contains(msg, tt.want) {
				t.Errorf("message %q does not mention %q", msg, tt.want)
			}
		})
	}
}
