package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/scoreroll/config"
	"github.com/jsphweid/scoreroll/convert"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/sample"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	serveConfig *config.Config
	port        int
)

func init() {
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the converter over HTTP",
	Long: `Accepts MusicXML bodies on POST /rasterize and answers with the
rasters as JSON. The offset and steps query parameters crop the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		serveConfig = loadConfig(cmd)
		serve()
	},
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad %v: %v", key, raw)
	}
	return v, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func HandleRasterize(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	steps, err := queryInt(r, "steps")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("empty body"))
		return
	}

	cfg := serveConfig
	if cfg == nil {
		cfg = config.Default()
	}
	source := r.URL.Query().Get("source")
	res, err := convert.Read(bytes.NewReader(body), source, cfg)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sample.Response(res, offset, steps))
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/rasterize", HandleRasterize).Methods("POST")
	handler := cors.Default().Handler(router)
	fmt.Printf("Listening on :%v\n", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), handler))
}
