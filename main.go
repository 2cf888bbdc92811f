package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"ticket_rag/agent"
	"ticket_rag/config"
	"ticket_rag/knowledgebase"
	"ticket_rag/model"
	"ticket_rag/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	ingest := flag.String("ingest", "", "ticket dataset JSON file to load into the search backend")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	m := model.NewModel(cfg.BaseURL, cfg.APIKey)
	embedder := utils.NewEmbedder(m, cfg.EmbeddingModel)
	store, err := utils.NewTicketStore(cfg.MilvusAddress, cfg.Collection, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("create ticket store failed")
	}
	defer store.Close()

	if *ingest != "" {
		if err := knowledgebase.Ingest(store, *ingest); err != nil {
			log.Fatal().Err(err).Msg("ingest dataset failed")
		}
		return
	}

	router := agent.NewRouter(m, cfg.ChatModel, store)
	reader := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("User Prompt> ")
		if !reader.Scan() {
			break
		}
		userprompt := reader.Text()
		if userprompt == "" {
			continue
		}
		fmt.Println(router.Answer(userprompt))
	}
}
