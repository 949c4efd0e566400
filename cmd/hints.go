package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	dmerrors "dormmatch/internal/errors"
)

// failureHint suggests a next step for a failure, or returns "" when there is
// nothing useful to add.
func failureHint(cmd *cobra.Command, cause error) string {
	switch {
	case cause == nil, errors.Is(cause, context.Canceled):
		return ""
	case dmerrors.IsConfiguration(cause):
		return "check the services section of the config file, DORMMATCH_SERVICES_* or --mode"
	case dmerrors.IsHTTPStatus(cause, http.StatusForbidden):
		return "this action needs an administrator account"
	case dmerrors.IsUnauthorized(cause):
		if cmd != nil && cmd.Name() == "login" {
			return "check the email and password"
		}
		return "run 'dormmatch login' to start a new session"
	case dmerrors.IsNotFound(cause):
		return "check the id and try again"
	case dmerrors.IsNetwork(cause):
		return "check that the backend services are reachable"
	default:
		return ""
	}
}

func printHint(cmd *cobra.Command, cause error) {
	if hint := failureHint(cmd, cause); hint != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Hint:", hint)
	}
}

// reportError prints an error returned by a command. Failed envelopes have
// already been printed by renderEnvelope.
func reportError(cmd *cobra.Command, err error) {
	if errors.Is(err, errRequestFailed) {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	printHint(cmd, err)
}
