package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectlint/projectlint/pkg/cli"
	"github.com/projectlint/projectlint/pkg/controller/run"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/suzuki-shunsuke/logrus-util/log"
)

var (
	version = ""
	commit  = "" //nolint:gochecknoglobals
	date    = "" //nolint:gochecknoglobals
)

func main() {
	logE := log.New("projectlint", version)
	if err := core(logE); err != nil {
		if errors.Is(err, run.ErrPolicyViolation) {
			os.Exit(1)
		}
		logerr.WithError(logE, err).Fatal("projectlint failed")
	}
}

func core(logE *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cli.Run(ctx, logE, &stdutil.LDFlags{ //nolint:wrapcheck
		Version: version,
		Commit:  commit,
		Date:    date,
	}, os.Stdout, os.Args...)
}
