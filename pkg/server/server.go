package server

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/inputkit/keycorrect/internal/utils"
	"github.com/inputkit/keycorrect/pkg/config"
	"github.com/inputkit/keycorrect/pkg/suggest"
)

// Server handles the IPC for typing corrections.
type Server struct {
	corrector suggest.Suggester
	cfg       *config.Config
	decoder   *msgpack.Decoder
	encoder   *msgpack.Encoder
	writer    *bufio.Writer
}

// NewServer creates a correction server speaking msgpack over stdin/stdout.
func NewServer(corrector suggest.Suggester, cfg *config.Config) *Server {
	writer := bufio.NewWriter(os.Stdout)
	return &Server{
		corrector: corrector,
		cfg:       cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(os.Stdin)),
		encoder:   msgpack.NewEncoder(writer),
		writer:    writer,
	}
}

// Start begins listening for IPC requests. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting correction server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var request CorrectionRequest
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request
func (s *Server) handleRequest(request CorrectionRequest) {
	switch request.Action {
	case "":
		s.handleCorrection(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	case "stats":
		s.send(StatusResponse{ID: request.ID, Status: "ok", Stats: s.corrector.Stats()})
	default:
		s.sendError(request.ID, "Unknown action: "+request.Action, 400)
	}
}

// handleCorrection validates the typed word, runs the correction passes,
// and back-fills with prefix completions when there is room.
func (s *Server) handleCorrection(request CorrectionRequest) {
	word := request.Word
	if word == "" {
		s.sendError(request.ID, "Missing 'w' parameter", 400)
		return
	}
	if len(word) > s.cfg.Server.MaxWordLen {
		s.sendError(request.ID, "Word exceeds maximum length", 400)
		return
	}
	if s.cfg.Server.EnableFilter && !utils.IsValidInput(word) {
		s.send(CorrectionResponse{ID: request.ID, Suggestions: []CorrectionCandidate{}})
		return
	}

	limit := request.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	suggestions := s.corrector.Suggest(word, limit)
	if len(suggestions) < limit {
		suggestions = append(suggestions, s.corrector.Completions(word, limit-len(suggestions))...)
	}
	elapsed := time.Since(start).Microseconds()

	ranks := utils.CreateRankList(len(suggestions))
	candidates := make([]CorrectionCandidate, len(suggestions))
	for i, sg := range suggestions {
		candidates[i] = CorrectionCandidate{Word: sg.Word, Freq: sg.Frequency, Rank: ranks[i]}
	}

	s.send(CorrectionResponse{
		ID:          request.ID,
		Suggestions: candidates,
		Count:       len(candidates),
		TimeTaken:   elapsed,
	})
}

// send encodes one msgpack frame and flushes it to the client
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

// sendError sends an error frame
func (s *Server) sendError(id, message string, code int) {
	s.send(CorrectionError{ID: id, Error: message, Code: code})
}
