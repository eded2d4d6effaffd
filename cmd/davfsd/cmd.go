package main

import (
	"flag"

	"github.com/xxxsen/davfs/config"
	"github.com/xxxsen/davfs/server"

	"github.com/xxxsen/common/logger"
	"go.uber.org/zap"
)

var file = flag.String("config", "./config.json", "config file path")

func main() {
	flag.Parse()

	c, err := config.Parse(*file)
	if err != nil {
		panic(err)
	}
	logitem := c.LogInfo
	logger := logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	logger.Info("recv config", zap.Any("config", c))
	logger.Info("serve namespace", zap.String("root", c.Root), zap.String("base_url", c.BaseURL))
	logger.Info("-- atomic write", zap.Bool("enable", c.AtomicWrite))
	svr, err := server.New(c.Bind,
		server.WithRoot(c.Root),
		server.WithBaseURL(c.BaseURL),
		server.WithPrefix(c.Prefix),
		server.WithAtomicWrite(c.AtomicWrite),
	)
	if err != nil {
		logger.Fatal("init server fail", zap.Error(err))
	}
	logger.Info("init server succ, start it...")
	if err := svr.Run(); err != nil {
		logger.Fatal("run server fail", zap.Error(err))
	}
}
