package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leaddash/internal/filter"
)

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func shutdownHandler(token *string, srv *http.Server, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		// Local-only guard
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Respond immediately, then shutdown asynchronously
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("shutting down\n"))
		log.Info("shutdown requested")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}
}

// flagName is the command-line spelling of a filter dimension.
func flagName(d filter.Dimension) string {
	return strings.ReplaceAll(string(d), "_", "-")
}

func addFilterFlags(cmd *cobra.Command) {
	for _, d := range filter.Dimensions {
		cmd.Flags().StringSlice(flagName(d), nil, "only leads with these "+strings.ToLower(d.Label())+" values (default all)")
	}
}

// filterLists returns the values of the filter flags that were set. Unset
// flags are left out so they mean "all values".
func filterLists(cmd *cobra.Command) (map[filter.Dimension][]string, error) {
	lists := make(map[filter.Dimension][]string)
	for _, d := range filter.Dimensions {
		name := flagName(d)
		if !cmd.Flags().Changed(name) {
			continue
		}
		vals, err := cmd.Flags().GetStringSlice(name)
		if err != nil {
			return nil, err
		}
		if vals == nil {
			vals = []string{}
		}
		lists[d] = vals
	}
	return lists, nil
}
