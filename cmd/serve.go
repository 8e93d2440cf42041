/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package cmd

import (
	"fmt"
	"os"

	"bennypowers.dev/mcshader-lsp/driver"
	"bennypowers.dev/mcshader-lsp/internal/config"
	LSP "bennypowers.dev/mcshader-lsp/lsp"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the language server for a shader pack",
	Long: `Launch a Language Server Protocol (LSP) server that provides IDE features
for Minecraft-style shader packs:

- #include resolution and go-to-include navigation
- Virtual-merge diagnostics for each tracked shader entry, routed back to
  the include file that actually caused the error
- Rename propagation across include literals when files or directories move`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// CRITICAL: redirect all pterm output to stderr immediately to
		// prevent LSP stdout contamination
		pterm.SetDefaultOutput(os.Stderr)

		var transport LSP.TransportKind = LSP.TransportStdio // default

		stdioFlag, _ := cmd.Flags().GetBool("stdio")
		tcpFlag, _ := cmd.Flags().GetBool("tcp")
		websocketFlag, _ := cmd.Flags().GetBool("websocket")
		nodejsFlag, _ := cmd.Flags().GetBool("nodejs")

		flagCount := 0
		if stdioFlag {
			transport = LSP.TransportStdio
			flagCount++
		}
		if tcpFlag {
			transport = LSP.TransportTCP
			flagCount++
		}
		if websocketFlag {
			transport = LSP.TransportWebSocket
			flagCount++
		}
		if nodejsFlag {
			transport = LSP.TransportNodeJS
			flagCount++
		}
		if flagCount > 1 {
			return fmt.Errorf("only one transport flag may be specified")
		}

		binary := viper.GetString("mcshader.driverBinary")
		if binary == "" {
			binary = "glslangValidator"
		}
		d := driver.NewExecDriver(binary)

		server, err := LSP.NewServer(transport, d)
		if err != nil {
			return err
		}
		defer server.Close()

		v, err := config.LoadViper(viper.GetString("projectDir"))
		if err == nil {
			if cfg, err := config.Decode(v); err == nil {
				server.SetConfig(cfg)
			}
		}

		return server.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Bool("stdio", false, "Use stdio transport (default)")
	serveCmd.Flags().Bool("tcp", false, "Use TCP transport")
	serveCmd.Flags().Bool("websocket", false, "Use WebSocket transport")
	serveCmd.Flags().Bool("nodejs", false, "Use Node.js transport")
}
