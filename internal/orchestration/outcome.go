package orchestration

import (
	"io"

	apperrors "github.com/agbru/picalc/internal/errors"
)

// PresentOutcome shows the summary of a run and converts its error into an
// exit code. A canceled run still has its partial summary presented before
// the error is handled.
//
// Parameters:
//   - summary: The summary returned by Coordinator.Run.
//   - runErr: The error returned by Coordinator.Run.
//   - presenter: Formats the summary.
//   - handler: Reports runErr and chooses the exit code.
//   - out: The writer for the summary.
//
// Returns:
//   - int: An exit code from the apperrors package.
func PresentOutcome(summary Summary, runErr error, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	presenter.PresentSummary(summary, out)
	if runErr == nil {
		return apperrors.ExitSuccess
	}
	return handler.HandleError(runErr, summary.Elapsed, out)
}
