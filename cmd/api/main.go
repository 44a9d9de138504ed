package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	apianalysis "dealscope/pkg/api/analysis"
	apiconfig "dealscope/pkg/api/config"
	apiinsight "dealscope/pkg/api/insight"
	"dealscope/pkg/core/agent"
	"dealscope/pkg/core/insight"
	"dealscope/pkg/core/store"
)

func main() {
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Agent configuration is optional; without it the insight path falls
	// back to the default Gemini provider.
	agentCfg, err := agent.LoadConfig("config/models.yaml")
	if err != nil {
		log.WithError(err).Warn("agent config not loaded, using defaults")
	}
	agentMgr := agent.NewManager(agentCfg)

	// Persistence is optional too: with no DATABASE_URL the API still runs
	// analyses, it just cannot save them.
	ctx := context.Background()
	var repo *store.DealRepo
	if err := store.InitDB(ctx); err != nil {
		log.WithError(err).Warn("database unavailable, persistence disabled")
	} else {
		repo = store.NewDealRepo(store.GetPool())
		defer store.Close()
	}

	analysisHandler := apianalysis.NewHandler(repo, log)
	insightHandler := apiinsight.NewHandler(repo, insight.NewGenerator(agentMgr), log)
	configHandler := apiconfig.NewHandler(agentMgr)

	router := mux.NewRouter()
	router.HandleFunc("/api/analysis/run", analysisHandler.HandleRun).Methods(http.MethodPost)
	router.HandleFunc("/api/analysis", analysisHandler.HandleList).Methods(http.MethodGet)
	router.HandleFunc("/api/analysis/{id}", analysisHandler.HandleGet).Methods(http.MethodGet)
	router.HandleFunc("/api/analysis/{id}", analysisHandler.HandleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/api/analysis/{id}/report", analysisHandler.HandleReport).Methods(http.MethodGet)
	router.HandleFunc("/api/insight/{id}", insightHandler.HandleGenerate).Methods(http.MethodPost)
	router.HandleFunc("/api/config", configHandler.HandleConfig).Methods(http.MethodGet)
	router.HandleFunc("/api/config/switch", configHandler.HandleSwitch).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("dealscope API starting")
	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
