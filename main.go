package main

import (
	"errors"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/secopshq/cyberark-policy-retriever/providers/cyberark"
	"github.com/secopshq/cyberark-policy-retriever/services/monitoring/logging"
	"github.com/secopshq/cyberark-policy-retriever/services/report"
	"github.com/secopshq/cyberark-policy-retriever/services/retrieval"
	"github.com/secopshq/cyberark-policy-retriever/services/secrets"
	"github.com/secopshq/cyberark-policy-retriever/utils"
)

var envPath string = "."

func main() {
	os.Exit(run(os.Stdout))
}

func run(out io.Writer) int {
	reporter := report.NewReportService(out)
	reporter.Header()

	config, err := utils.LoadConfig(envPath)
	if err != nil {
		reporter.Failure(err.Error())
		reporter.ConfigurationHelp()
		return 1
	}

	logger := logging.NewLoggerWithOptions(logging.Options{
		Level:         config.LogLevel,
		RunID:         uuid.NewString(),
		SyslogAddress: config.SyslogAddress,
		SyslogAppName: config.SyslogAppName,
	})
	logger.WithField("revision", utils.REVISION).Info("Starting policy retrieval")

	runner := retrieval.NewRetrievalService(
		secrets.NewSecretsService(config.AWSSecretName, config.AWSRegion, logger),
		cyberark.NewIdentityProvider(logger),
		cyberark.NewSCAProvider(logger),
		cyberark.NewSIAProvider(logger),
		reporter,
		logger,
	)

	result, err := runner.Run()
	if err != nil {
		reporter.Failure(failureMessage(err))
		logger.WithField("state", runner.State().String()).Error(err.Error())
		return 1
	}

	reporter.SCASection(result.SCA)
	reporter.SIASection(result.SIA)
	reporter.Summary(result.Summary())

	return 0
}

// failureMessage prefers the richer ErrorOut form carried by the service
// error types.
func failureMessage(err error) string {
	var configurationErr *secrets.ConfigurationError
	if errors.As(err, &configurationErr) {
		return configurationErr.ErrorOut()
	}

	var authenticationErr *retrieval.AuthenticationError
	if errors.As(err, &authenticationErr) {
		return authenticationErr.ErrorOut()
	}

	var retrievalErr *retrieval.RetrievalError
	if errors.As(err, &retrievalErr) {
		return retrievalErr.ErrorOut()
	}

	return err.Error()
}
