package app

import (
	"context"
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/vk/plugkit/internal/diag"
	"github.com/vk/plugkit/internal/host"
)

// Run executes one simulated request: plug every registered extension, fire
// the host's dispatch phases for the configured audience, then report what
// the extensions registered and what the host enqueued.
func (a *App) Run(ctx context.Context) error {
	ctx = diag.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.discoverManifests(ctx)

	for _, identity := range a.identities {
		if err := a.bootstrap.Plug(ctx, identity, a.cfg.ExtraHook); err != nil {
			return fmt.Errorf("plugging %q: %w", identity, err)
		}
	}

	// The host drives the rest of the request: each phase hook fires once,
	// in the host's order.
	a.mem.Dispatcher.Fire(ctx, host.HookBoot)
	if a.cfg.Audience == AudienceAdmin {
		a.mem.Dispatcher.Fire(ctx, host.HookAdminMenu)
		a.mem.Dispatcher.Fire(ctx, host.HookAdminInit)
		a.mem.Dispatcher.Fire(ctx, host.HookAdminNotices, a.outW)
		a.mem.Dispatcher.Fire(ctx, host.HookAdminAssets)
	} else {
		a.mem.Dispatcher.Fire(ctx, host.HookPublicAssets)
	}

	a.report(ctx)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// report prints the extension summary and the enqueued assets.
func (a *App) report(ctx context.Context) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("EXTENSION", "NAME", "VERSION", "MIN HOST", "STATE")

	for _, identity := range a.identities {
		name, version := a.headerInfo(ctx, identity)
		_, minVersion, _ := a.instances.Declare(ctx, identity)
		if minVersion == "" {
			minVersion = "-"
		}
		table.AddRow(identity, name, version, minVersion, a.bootstrap.State(identity).String())
	}
	fmt.Fprintln(a.outW, table)

	entries := a.mem.Enqueued.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.outW, "no assets enqueued for this request")
		return
	}

	assetTable := uitable.New()
	assetTable.MaxColWidth = 80
	assetTable.AddRow("HANDLE", "URI", "EXTRA")
	for _, e := range entries {
		assetTable.AddRow(e.Handle, e.URI, e.Extra)
	}
	fmt.Fprintln(a.outW, assetTable)
}

// headerInfo reads the manifest headers for display, degrading to the
// identity's short name when the manifest cannot be read.
func (a *App) headerInfo(ctx context.Context, identity string) (name, version string) {
	name, version = shortIdentity(identity), "-"
	manifestPath, _, ok := a.instances.Declare(ctx, identity)
	if !ok {
		return name, version
	}
	meta, err := a.h.Meta.Read(manifestPath)
	if err != nil {
		diag.FromContext(ctx).Debug("Manifest headers unavailable for report.", "identity", identity, "error", err)
		return name, version
	}
	if meta["Name"] != "" {
		name = meta["Name"]
	}
	if meta["Version"] != "" {
		version = meta["Version"]
	}
	return name, version
}
