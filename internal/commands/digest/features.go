package digestcmd

// FeatureGates exposes runtime feature toggles required by digest command handlers.
// Callers should supply closures that read from digest.Config.Features so handlers
// stay decoupled from configuration while honouring feature flags.
type FeatureGates struct {
	ArchiveEnabled func() bool
}

func (g FeatureGates) archiveEnabled() bool {
	if g.ArchiveEnabled == nil {
		return true
	}
	return g.ArchiveEnabled()
}
