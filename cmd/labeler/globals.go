package main

import (
	"cloud.google.com/go/storage"

	"github.com/openimaging/labeler/labelscheme"
	"github.com/openimaging/labeler/session"
)

type Global struct {
	log           logger
	storageClient *storage.Client

	Site    string
	Company string
	Email   string

	Project    string
	ImageRoot  string
	OutputPath string
	Classes    []labelscheme.Class

	session *session.Session
}

func (g *Global) Session() *session.Session {
	return g.session
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
