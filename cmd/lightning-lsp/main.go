// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"lightning/internal/lexer"
	"lightning/internal/lsp"
)

const lsName = "lightning"

var handler protocol.Handler

func main() {
	verbosity := flag.Int("v", 1, "log verbosity")
	tabWidth := flag.Int("tab-width", 0, "expand tabs to this width; 0 treats tabs as unknown bytes")
	flag.Parse()

	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("lightning.lsp")

	var opts []lexer.Option
	if *tabWidth > 0 {
		opts = append(opts, lexer.WithTabWidth(*tabWidth))
	}
	h := lsp.NewLightningHandler(opts...)

	handler = protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Info("starting language server")

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
