/*
Diced runs an HTTP façade over the dice expression evaluator.

It exposes two endpoints: POST /roll, which parses and evaluates a dice
expression and returns its value, trace, and rng draw count; and
GET /roll/{request_id}, which looks up a previously computed result by the
ID returned from the POST. There is no persistence beyond an in-process,
bounded history log (internal/history) — a restart loses prior results, by
design; this is a calculator, not a database.

Usage:

	diced [flags]

The flags are:

	-v, --version
		Give the current version of tunadice and then exit.

	-l, --listen ADDR
		Address to listen on. Defaults to ":8080".

	-a, --aliases FILE
		Load a TOML file of "$name" expansions and apply them to every
		expression before parsing. Overrides the config file's alias_file,
		if both are given.

	--config FILE
		Load a TOML config file (see internal/config) supplying defaults
		for listen address, request timeout, alias file, and history
		capacity. Flags above take precedence over anything it sets.
*/
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/dekarrin/tunadice"
	"github.com/dekarrin/tunadice/internal/alias"
	"github.com/dekarrin/tunadice/internal/config"
	"github.com/dekarrin/tunadice/internal/history"
	"github.com/dekarrin/tunadice/internal/version"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagListen  = pflag.StringP("listen", "l", "", "Address to listen on")
	flagAliases = pflag.StringP("aliases", "a", "", "Load a TOML file of alias expansions")
	flagConfig  = pflag.String("config", "", "Load a TOML config file supplying defaults")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			os.Exit(1)
		}
	}

	aliasFile := cfg.AliasFile
	if *flagAliases != "" {
		aliasFile = *flagAliases
	}
	var aliasSet alias.Set
	if aliasFile != "" {
		var err error
		aliasSet, err = alias.Load(aliasFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			os.Exit(1)
		}
	}

	listen := cfg.HTTPAddr
	if *flagListen != "" {
		listen = *flagListen
	}

	api := &api{
		aliases: aliasSet,
		log:     history.New(cfg.HistoryCapacity),
	}

	r := chi.NewRouter()
	r.Post("/roll", api.handlePostRoll)
	r.Get("/roll/{request_id}", api.handleGetRoll)

	srv := &http.Server{
		Addr:         listen,
		Handler:      r,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	log.Printf("tunadice %s listening on %s", version.Current, listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

type api struct {
	aliases alias.Set
	log     *history.Log
}

// rollRequest is the JSON body expected by POST /roll.
type rollRequest struct {
	Expression string `json:"expression"`
	Seed       *int64 `json:"seed,omitempty"`
}

// rollResponse is the JSON body returned by POST /roll and GET /roll/{id}.
type rollResponse struct {
	RequestID string `json:"request_id"`
	Value     int64  `json:"value"`
	Trace     string `json:"trace"`
	RngCount  int64  `json:"rng_count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *api) handlePostRoll(w http.ResponseWriter, req *http.Request) {
	defer panicTo500(w, req)

	var body rollRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if body.Expression == "" {
		writeError(w, http.StatusBadRequest, "expression must not be empty")
		return
	}

	expanded, err := a.aliases.Expand(body.Expression)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expr, err := tunadice.Parse(expanded)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	seed := time.Now().UnixNano()
	if body.Seed != nil {
		seed = *body.Seed
	}
	src := tunadice.Seeded(seed)

	value, trace, rngCount, err := tunadice.Eval(expr, src)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	rec := a.log.Add(body.Expression, value, trace, rngCount)
	writeJSON(w, http.StatusOK, rollResponse{
		RequestID: rec.ID.String(),
		Value:     rec.Value,
		Trace:     rec.Trace,
		RngCount:  rec.RngCount,
	})
}

func (a *api) handleGetRoll(w http.ResponseWriter, req *http.Request) {
	defer panicTo500(w, req)

	idStr := chi.URLParam(req, "request_id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	rec, ok := a.log.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, rollResponse{
		RequestID: rec.ID.String(),
		Value:     rec.Value,
		Trace:     rec.Trace,
		RngCount:  rec.RngCount,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// panicTo500 recovers a panic in an HTTP handler and turns it into a
// HTTP-500 response instead of taking down the whole server.
func panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		log.Printf("panic handling %s %s: %v\n%s", req.Method, req.URL.Path, panicErr, debug.Stack())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
