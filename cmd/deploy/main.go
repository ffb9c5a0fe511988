// Deployment CLI for hosted assistants: provisions, lists and removes
// the agents defined in the static configs, keeping the local
// deployment records in sync.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/va6996/mathdesk/agents"
	"github.com/va6996/mathdesk/config"
	logcontext "github.com/va6996/mathdesk/context"
	"github.com/va6996/mathdesk/log"
	"github.com/va6996/mathdesk/orm"
	"github.com/va6996/mathdesk/providers/assistants"
)

func main() {
	_ = godotenv.Load()

	action := flag.String("action", "list", "action to perform: create, list or delete")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log.Init(cfg.Log.Level)

	if cfg.AI.Azure.Endpoint == "" || cfg.AI.Azure.APIKey == "" {
		fmt.Fprintln(os.Stderr, "AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY must be set")
		os.Exit(1)
	}

	client := assistants.NewClient(
		cfg.AI.Azure.Endpoint,
		cfg.AI.Azure.APIKey,
		cfg.AI.Azure.APIVersion,
		time.Duration(cfg.Assistants.PollMillis)*time.Millisecond,
	)

	db, err := orm.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	if err := orm.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	ctx := logcontext.WithRequestID(context.Background(), logcontext.NewRequestID())

	switch *action {
	case "create":
		createAll(ctx, client, db)
	case "list":
		listAll(ctx, client, db)
	case "delete":
		deleteAll(ctx, client, db)
	default:
		fmt.Fprintf(os.Stderr, "unknown action %q, expected create, list or delete\n", *action)
		os.Exit(1)
	}
}

// createAll provisions every configured agent. A failure on one agent
// does not stop the rest.
func createAll(ctx context.Context, client *assistants.Client, db *gorm.DB) {
	for _, cfg := range agents.AgentConfigs() {
		assistant, err := client.CreateAssistant(ctx, assistants.AssistantRequest{
			Name:         cfg.Name,
			Model:        cfg.Model,
			Instructions: cfg.Instructions,
		})
		if err != nil {
			fmt.Printf("failed to deploy %s: %v\n", cfg.Key, err)
			continue
		}

		err = orm.SaveDeployment(db, &orm.AgentDeployment{
			AgentKey:     cfg.Key,
			AssistantID:  assistant.ID,
			Name:         cfg.Name,
			Model:        cfg.Model,
			Instructions: cfg.Instructions,
			DeployedAt:   time.Now(),
		})
		if err != nil {
			fmt.Printf("deployed %s as %s but failed to record it: %v\n", cfg.Key, assistant.ID, err)
			continue
		}
		fmt.Printf("deployed %s as %s\n", cfg.Key, assistant.ID)
	}
}

func listAll(ctx context.Context, client *assistants.Client, db *gorm.DB) {
	deployments, err := orm.ListDeployments(db)
	if err != nil {
		fmt.Printf("failed to list stored deployments: %v\n", err)
	} else if len(deployments) == 0 {
		fmt.Println("no stored deployments")
	} else {
		fmt.Println("stored deployments:")
		for _, dep := range deployments {
			fmt.Printf("  %s -> %s (%s, %s, deployed %s)\n",
				dep.AgentKey, dep.AssistantID, dep.Name, dep.Model,
				dep.DeployedAt.Format(time.RFC3339))
		}
	}

	remote, err := client.ListAssistants(ctx)
	if err != nil {
		fmt.Printf("failed to list hosted assistants: %v\n", err)
		return
	}
	if len(remote) == 0 {
		fmt.Println("no hosted assistants")
		return
	}
	fmt.Println("hosted assistants:")
	for _, assistant := range remote {
		fmt.Printf("  %s (%s, %s)\n", assistant.ID, assistant.Name, assistant.Model)
	}
}

func deleteAll(ctx context.Context, client *assistants.Client, db *gorm.DB) {
	deployments, err := orm.ListDeployments(db)
	if err != nil {
		fmt.Printf("failed to list stored deployments: %v\n", err)
		return
	}
	for _, dep := range deployments {
		if err := client.DeleteAssistant(ctx, dep.AssistantID); err != nil {
			fmt.Printf("failed to delete assistant %s for %s: %v\n", dep.AssistantID, dep.AgentKey, err)
			continue
		}
		if err := orm.DeleteDeployment(db, dep.AgentKey); err != nil {
			fmt.Printf("deleted assistant %s but failed to remove the record for %s: %v\n", dep.AssistantID, dep.AgentKey, err)
			continue
		}
		fmt.Printf("deleted %s (%s)\n", dep.AgentKey, dep.AssistantID)
	}
}
