/*
Copyright © 2026 NAME HERE
*/
package cmd

import (
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/masnyjimmy/qforms/portarg"
	"github.com/masnyjimmy/qforms/server"
	"github.com/spf13/cobra"
)

const DEFAULT_PORT = 8000

// ==================== Cobra Command ====================

var serveCmd = &cobra.Command{
	Use:   "serve [port]",
	Short: "Serve the working directory over HTTP",
	Long: `Serve files from a directory on all interfaces.

The port is taken from the first argument. When it is missing or not a
valid port number, --default-port is used instead (QFORMS_DEFAULT_PORT
overrides the built-in default of 8000).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		defaultPort, _ := cmd.Flags().GetInt("default-port")
		dir, _ := cmd.Flags().GetString("dir")
		watch, _ := cmd.Flags().GetBool("watch")
		eventsPath, _ := cmd.Flags().GetString("events-path")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")

		opt := server.DefaultOptions()
		opt.Dir = dir
		opt.Watch = watch
		opt.EventsPath = eventsPath
		opt.AllowedOrigins = origins

		Serve(resolvePort(args, defaultPort), opt)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("default-port", envPort("QFORMS_DEFAULT_PORT", DEFAULT_PORT), "Port used when no valid port argument is given")
	serveCmd.Flags().StringP("dir", "d", ".", "Directory to serve")
	serveCmd.Flags().BoolP("watch", "w", false, "Push reload events when files change")
	serveCmd.Flags().String("events-path", "/_events", "URL path of the reload event stream")
	serveCmd.Flags().StringSlice("cors-origin", []string{"*"}, "Allowed CORS origins")
	serveCmd.MarkFlagDirname("dir")
}

func resolvePort(args []string, defaultPort int) int {
	res := portarg.Parse(args)

	if res.Status == portarg.Invalid {
		log.Printf("%v, using default port %d", res.Err, defaultPort)
	}

	return res.Or(defaultPort)
}

// listen binds all interfaces on port.
func listen(port int) (net.Listener, error) {
	return net.Listen("tcp", fmt.Sprintf(":%d", port))
}

func serve(ln net.Listener, opt server.Options) error {
	srv, err := server.New(opt)
	if err != nil {
		ln.Close()
		return err
	}
	defer srv.Close()

	if opt.Watch {
		log.Printf("Watching %v for changes, events at %v", opt.Dir, opt.EventsPath)
	}

	log.Printf("Serving %v at %v", opt.Dir, ln.Addr())
	return http.Serve(ln, srv.Handler())
}

func Serve(port int, opt server.Options) {
	ln, err := listen(port)
	if err != nil {
		log.Fatal(err)
	}

	log.Fatal(serve(ln, opt))
}
