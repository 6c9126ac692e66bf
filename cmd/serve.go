package cmd

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/gabc2ly/constants"
	"github.com/jsphweid/gabc2ly/file"
	"github.com/jsphweid/gabc2ly/gabc"
	"github.com/jsphweid/gabc2ly/lily"
	"github.com/jsphweid/gabc2ly/midi"
	"github.com/jsphweid/gabc2ly/model"
	"github.com/jsphweid/gabc2ly/util"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves conversions over http",
	Long:  `Serves POST /convert, POST /text and GET /midi/{id} on GABC2LY_ADDR`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func isInputError(err error) bool {
	return errors.Is(err, gabc.ErrInvalidClef) ||
		errors.Is(err, gabc.ErrUnsupportedToken) ||
		errors.Is(err, file.ErrNotFound)
}

// requestText is the gabc of the request; with a snippet the body is read
// as .tex.
func requestText(r *http.Request) (string, error) {
	var input model.ConvertRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return "", errors.Wrap(err, "Could not unmarshal request body")
	}
	if input.Snippet > 0 {
		return file.Snippet(input.Gabc, input.Snippet)
	}
	return file.Body(input.Gabc), nil
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	text, err := requestText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	notes, err := decodeText(text)
	if err != nil {
		status := http.StatusInternalServerError
		if isInputError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	var ly strings.Builder
	if err := lily.Render(&ly, notes, constants.GetTempo()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := uuid.New().String()
	if err := util.EnsureDir(constants.GetOutDir()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	path := filepath.Join(constants.GetOutDir(), id+".mid")
	if err := midi.WriteFile(path, notes, float64(constants.GetTempo())); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	log.Printf("converted %v notes as %v", len(notes), id)

	writeJSON(w, model.ConvertResponse{
		Id:       id,
		Lilypond: ly.String(),
		NumNotes: len(notes),
		MidiPath: "/midi/" + id,
	})
}

func HandleText(w http.ResponseWriter, r *http.Request) {
	text, err := requestText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, model.TextResponse{Text: file.RemoveParens(text)})
}

func HandleMidi(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, errors.Errorf("unknown midi %q", mux.Vars(r)["id"]))
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	http.ServeFile(w, r, filepath.Join(constants.GetOutDir(), id.String()+".mid"))
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/text", HandleText).Methods("POST")
	router.HandleFunc("/midi/{id}", HandleMidi).Methods("GET")
	return cors.Default().Handler(router)
}

func serve() error {
	if err := util.EnsureDir(constants.GetOutDir()); err != nil {
		return err
	}
	log.Printf("listening on %v", constants.GetAddr())
	return http.ListenAndServe(constants.GetAddr(), NewRouter())
}
