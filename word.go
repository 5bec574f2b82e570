package word2pdf

// WordLauncher drives Microsoft Word through COM automation.
// It is only available on Windows with Word installed.
type WordLauncher struct{}

// Name implements Launcher.
func (WordLauncher) Name() string { return EngineWord }

var _ Launcher = WordLauncher{}
