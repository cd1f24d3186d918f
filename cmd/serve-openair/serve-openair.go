package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/paulcager/go-http-middleware"
	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/paulcager/openair"
)

const (
	apiVersion = "v1"
)

var (
	port       string
	dataFile   string
	configFile string
	logLevel   string
	logFile    string
	dump       bool
	collection *openair.Collection
)

func main() {
	flag.StringVarP(&port, "port", "p", ":9093", "Port to listen on")
	flag.StringVarP(&dataFile, "file", "f", "openair.txt", "OpenAir file or URL to serve (may be zstd compressed)")
	flag.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file, rotating it, instead of stderr")
	flag.BoolVar(&dump, "dump", false, "Print the parsed airspace and exit")
	flag.Parse()

	setupLogging()

	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	cfg := openair.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = openair.LoadConfig(configFile); err != nil {
			log.Fatalf("Could not load config %q: %s", configFile, err)
		}
	}

	var err error
	if strings.HasPrefix(dataFile, "http://") || strings.HasPrefix(dataFile, "https://") {
		collection, err = openair.Load(dataFile, cfg)
	} else {
		collection, err = openair.LoadFile(dataFile, cfg)
	}
	if err != nil {
		log.Fatalf("Could not load %q: %s", dataFile, err)
	}
	collection.Scale()

	if dump {
		pretty.Println(collection.Airspaces)
		fmt.Print(collection.Report.String())
		return
	}

	server := makeHTTPServer(port)
	log.Fatal(server.ListenAndServe())
}

func setupLogging() {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", logLevel)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if logFile != "" {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    32, // MB
			MaxBackups: 1,
		})
	}
}

func makeHTTPServer(listenPort string) *http.Server {
	middleware.EnablePrometheus()

	http.Handle(
		"/"+apiVersion+"/airspace/all",
		middleware.MakeLoggingHandler(http.HandlerFunc(handleRequestAll)))

	http.Handle(
		"/"+apiVersion+"/airspace/geojson",
		middleware.MakeLoggingHandler(http.HandlerFunc(handleGeoJSON)))

	http.Handle(
		"/"+apiVersion+"/airspace/report",
		middleware.MakeLoggingHandler(http.HandlerFunc(handleReport)))

	http.Handle(
		"/"+apiVersion+"/airspace/",
		middleware.MakeLoggingHandler(http.HandlerFunc(handle)))

	log.Println("Starting HTTP server on " + listenPort)

	s := &http.Server{
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       10 * time.Minute,
		Handler:           http.DefaultServeMux,
		Addr:              listenPort,
	}

	return s
}

func handle(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	latLon := strings.TrimSpace(values.Get("latlon"))
	name := strings.TrimSpace(values.Get("name"))

	if name != "" {
		handleNamedRequest(w, r, name)
		return
	}

	if latLon != "" {
		handleLatlonRequest(w, latLon)
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

// pathResponse is an airspace together with its outline in canvas space.
type pathResponse struct {
	openair.Airspace
	Path string `json:"path"`
}

func handleRequestAll(w http.ResponseWriter, _ *http.Request) {
	all := make([]pathResponse, len(collection.Airspaces))
	for i := range collection.Airspaces {
		all[i] = pathResponse{collection.Airspaces[i], collection.Airspaces[i].ScaledPath(collection.Normalisation)}
	}
	writeJSON(w, "handleRequestAll", struct {
		Airspaces     []pathResponse        `json:"airspaces"`
		Normalisation openair.Normalisation `json:"normalisation"`
	}{all, collection.Normalisation})
}

func handleGeoJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, "handleGeoJSON", collection.GeoJSON())
}

func handleReport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, "handleReport", collection.Report)
}

func handleNamedRequest(w http.ResponseWriter, r *http.Request, id string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	a, ok := collection.Find(id)
	if !ok {
		log.Printf("Did not find airspace %q\n", id)
		http.NotFound(w, r)
		return
	}

	writeJSON(w, "handleNamedRequest("+id+")", pathResponse{a, a.ScaledPath(collection.Normalisation)})
}

func handleLatlonRequest(w http.ResponseWriter, latLonStr string) {
	parts := strings.Split(latLonStr, ",")
	if len(parts) != 2 {
		handleError(w, latLonStr, fmt.Errorf("want lat,lon"))
		return
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		handleError(w, latLonStr, err)
		return
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		handleError(w, latLonStr, err)
		return
	}

	point := orb.Point{lon, lat}
	writeJSON(w, "handleLatlonRequest", collection.Enclosing(point))
}

func writeJSON(w http.ResponseWriter, what string, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		log.Println(what+":", err)
		http.Error(w, fmt.Sprintf("JSON encoding error: %s", err), http.StatusInternalServerError)
	}
}

func handleError(w http.ResponseWriter, str string, err error) {
	http.Error(w, fmt.Sprintf("Invalid request: %q (%s)", str, err), http.StatusBadRequest)
}
