package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/tunesmith/chord"
	"github.com/jsphweid/tunesmith/config"
	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/export"
	"github.com/jsphweid/tunesmith/file"
	"github.com/jsphweid/tunesmith/line"
	"github.com/jsphweid/tunesmith/mnlg"
	"github.com/jsphweid/tunesmith/model"
	"github.com/jsphweid/tunesmith/tuning"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exportIdHeader    = "X-Export-Id"
	diagnosticsHeader = "X-Export-Diagnostics"
	maxBodyBytes      = 1 << 20
)

var errLineOutOfRange = errors.New("line result is out of range")

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the export API",
	Long:  `Serves scale export and line algebra over HTTP on server.bind.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := &http.Server{
			Addr:              cfg.Server.Bind,
			Handler:           NewHandler(cfg, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info("serving", zap.String("bind", cfg.Server.Bind))
		return srv.ListenAndServe()
	},
}

type server struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewHandler returns the API router wrapped in CORS handling.
func NewHandler(c *config.Config, l *zap.Logger) http.Handler {
	s := &server{cfg: c, logger: l}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/formats", s.handleFormats).Methods("GET")
	router.HandleFunc("/export/{format}", s.handleExport).Methods("POST")
	router.HandleFunc("/chord/invert", s.handleInvert).Methods("POST")
	router.HandleFunc("/line/{op}", s.handleLine).Methods("POST")
	router.Use(s.logRequests)

	return cors.New(cors.Options{
		AllowedOrigins: c.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{exportIdHeader, diagnosticsHeader, "Content-Disposition"},
	}).Handler(router)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// writeJSON encodes before writing the header, so a value that cannot be
// encoded turns into a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(model.ErrorResponse{Error: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func (s *server) handleFormats(w http.ResponseWriter, r *http.Request) {
	res := make([]model.FormatInfo, 0, len(export.Formats))
	for _, key := range export.Keys() {
		f := export.Formats[key]
		res = append(res, model.FormatInfo{Key: f.Key, Extension: f.Extension, MimeType: f.MimeType, Description: f.Description})
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) tableFromRequest(input model.ExportRequestBody) (*tuning.Table, error) {
	degrees, err := line.ParseAll(input.Lines)
	if err != nil {
		return nil, err
	}
	freq := input.BaseFrequency
	if freq == 0 {
		freq = s.cfg.Tuning.BaseFrequency
	}
	midi := s.cfg.Tuning.BaseMidiNote
	if input.BaseMidiNote != nil {
		midi = *input.BaseMidiNote
	}
	return tuning.Build(degrees, freq, midi, input.Name)
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	exportId := uuid.NewString()
	w.Header().Set(exportIdHeader, exportId)

	format, err := export.Lookup(mux.Vars(r)["format"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	log := s.logger.With(zap.String("export_id", exportId), zap.String("format", format.Key))

	var input model.ExportRequestBody
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	table, err := s.tableFromRequest(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	newline := s.cfg.Newline()
	switch input.Newline {
	case config.NewlineUnix:
		newline = constants.UnixNewline
	case config.NewlineWindows:
		newline = constants.WindowsNewline
	}
	exporter := s.cfg.MnlgExporter(log)
	if input.Base64 {
		exporter.Encoding = mnlg.Base64
	}

	payload, err := format.Write(r.Context(), table, export.Options{Newline: newline, Mnlg: exporter})
	switch {
	case errors.Is(err, export.ErrNoTuningData):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		log.Error("export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if len(payload.Diagnostics) > 0 {
		msgs := make([]string, 0, len(payload.Diagnostics))
		for _, d := range payload.Diagnostics {
			msgs = append(msgs, d.Error())
		}
		w.Header().Set(diagnosticsHeader, strings.Join(msgs, "; "))
	}

	if _, err := (file.ResponseSink{W: w}).Save(r.Context(), payload); err != nil {
		log.Warn("could not send export", zap.Error(err))
		return
	}
	log.Info("exported", zap.String("filename", payload.Filename), zap.Int("bytes", len(payload.Data)))
}

func (s *server) handleInvert(w http.ResponseWriter, r *http.Request) {
	var input model.InvertRequestBody
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	inverted, err := chord.Invert(input.Chord)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, model.InvertResponse{Chord: input.Chord, Inverted: inverted})
}

func (s *server) handleLine(w http.ResponseWriter, r *http.Request) {
	var input model.LineRequestBody
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	l, err := line.Parse(input.Line)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var res line.Line
	switch op := mux.Vars(r)["op"]; op {
	case "stack", "mod":
		other, err := line.Parse(input.Other)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if op == "stack" {
			res = line.Stack(l, other)
		} else {
			res = line.Modulo(l, other)
		}
	case "power":
		res = line.StackSelf(l, input.Power)
	default:
		writeError(w, http.StatusNotFound, errors.New("unknown line operation "+op))
		return
	}

	if c, d := res.Cents(), res.Decimal(); math.IsNaN(c) || math.IsInf(c, 0) || math.IsNaN(d) || math.IsInf(d, 0) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("%w: %s", errLineOutOfRange, res))
		return
	}

	writeJSON(w, http.StatusOK, model.LineResponse{
		Result:  res.String(),
		Type:    res.Type().String(),
		Cents:   res.Cents(),
		Decimal: res.Decimal(),
	})
}
