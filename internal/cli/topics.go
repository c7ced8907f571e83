package cli

import (
	"embed"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/retarget/pkg/cobrax/topics"
	"github.com/arthur-debert/retarget/pkg/logging"
)

//go:embed topics/*.md
var topicFiles embed.FS

// initTopics installs the help command backed by the embedded topics
func initTopics(rootCmd *cobra.Command) {
	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	fs := afero.FromIOFS{FS: topicFiles}
	if err := topics.InitializeWithOptions(rootCmd, fs, "topics", opts); err != nil {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Msg("Help topics unavailable")
	}
}
