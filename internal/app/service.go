package app

import (
	"portable-deployer/internal/adapters"
	"portable-deployer/internal/ports"
)

type Service struct {
	Downloader   ports.Downloader
	Extractor    ports.Extractor
	Runner       ports.ToolRunner
	ConfigLoader ports.ConfigLoader
}

func NewService() Service {
	return Service{
		Downloader:   adapters.NewHTTPDownloader(),
		Extractor:    adapters.NewZipExtractor(),
		Runner:       adapters.NewExecToolRunner(),
		ConfigLoader: adapters.NewConfigFileAdapter(),
	}
}
