package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cliserve/cliserve/pkg/config"
	"github.com/cliserve/cliserve/pkg/search"
	"github.com/cliserve/cliserve/pkg/suggest"
	"github.com/cliserve/cliserve/pkg/syntax"
)

// Server handles the IPC for command completion queries.
type Server struct {
	engine  *suggest.Engine
	index   *search.Index
	cfg     *config.Config
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	// degraded is set when dictionary initialization failed; queries
	// then answer empty instead of faulting the host event loop.
	degraded bool
}

// NewServer creates a completion server on stdin/stdout.
func NewServer(engine *suggest.Engine, index *search.Index, cfg *config.Config) *Server {
	return NewServerIO(engine, index, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on explicit streams. Tests use this.
func NewServerIO(engine *suggest.Engine, index *search.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if index == nil {
		index = search.NewIndex(nil)
	}
	return &Server{
		engine:   engine,
		index:    index,
		cfg:      cfg,
		decoder:  msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:  msgpack.NewEncoder(w),
		degraded: index == nil || index.Len() == 0,
	}
}

// Start signals readiness and then answers requests until the client
// closes stdin.
func (s *Server) Start() error {
	log.Debug("starting IPC server")
	s.send(s.status(""))

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("client disconnected")
				return nil
			}
			log.Errorf("decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "complete":
		s.handleComplete(req)
	case "accept":
		s.handleAccept(req)
	case "classify":
		s.handleClassify(req)
	case "search":
		s.handleSearch(req)
	case "detail":
		s.handleDetail(req)
	case "status", "health":
		s.send(s.status(req.ID))
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleComplete(req Request) {
	if len(req.Line) > s.cfg.Server.MaxLine {
		s.sendError(req.ID, fmt.Sprintf("line exceeds maximum length of %d", s.cfg.Server.MaxLine), 400)
		return
	}

	start := time.Now()
	result := s.engine.Suggest(req.Line, req.Cursor)
	elapsed := time.Since(start)

	tokens := result.Tokens
	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}
	if len(tokens) > limit {
		tokens = tokens[:limit]
	}

	s.send(CompleteResponse{
		ID:        req.ID,
		Triggered: result.Triggered,
		Tokens:    tokens,
		Start:     result.Span.Start,
		End:       result.Span.End,
		Count:     len(tokens),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) handleAccept(req Request) {
	if req.Token == "" {
		s.sendError(req.ID, "missing 'tok' parameter", 400)
		return
	}
	text, cursor := suggest.Accept(req.Token, suggest.Span{Start: req.Start, End: req.End})
	s.send(AcceptResponse{ID: req.ID, Text: text, Cursor: cursor})
}

func (s *Server) handleClassify(req Request) {
	categories := make([]string, len(req.Tokens))
	for i, tok := range req.Tokens {
		categories[i] = syntax.Classify(tok).String()
	}
	s.send(ClassifyResponse{ID: req.ID, Categories: categories})
}

func (s *Server) handleSearch(req Request) {
	if req.Query == "" {
		s.sendError(req.ID, "missing 'q' parameter", 400)
		return
	}
	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	var entries []search.Entry
	switch req.Mode {
	case "", "prefix":
		entries = s.index.QueryPrefix(req.Query, limit)
	case "substring":
		entries = s.index.QuerySubstring(req.Query, limit)
	case "fuzzy":
		entries = s.index.QueryFuzzy(req.Query, limit)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown search mode: %s", req.Mode), 400)
		return
	}

	results := make([]SearchResult, len(entries))
	for i, entry := range entries {
		results[i] = SearchResult{Command: entry.Command}
		if entry.Detail != nil {
			results[i].Description = entry.Detail.Description
		}
	}
	s.send(SearchResponse{ID: req.ID, Results: results, Count: len(results)})
}

func (s *Server) handleDetail(req Request) {
	detail := s.index.Detail(req.Query)
	if detail == nil {
		s.send(DetailResponse{ID: req.ID, Found: false})
		return
	}
	s.send(DetailResponse{
		ID:          req.ID,
		Found:       true,
		Command:     req.Query,
		Description: detail.Description,
		Syntax:      detail.Syntax,
		Params:      detail.Params,
		Examples:    detail.Examples,
	})
}

func (s *Server) status(id string) StatusResponse {
	return StatusResponse{
		ID:       id,
		Status:   "ready",
		Commands: s.index.Len(),
		Degraded: s.degraded,
	}
}

func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	log.Debugf("request error: %s", message)
	s.send(ErrorResponse{ID: id, Error: message, Status: code})
}
