// Small CLI tool to poke the site backend through the SDK: list and read
// blogs, comment, like, subscribe. Handy for smoke-testing a deployment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/sitefront/internal/auth"
	"github.com/2beens/sitefront/internal/blog"
	"github.com/2beens/sitefront/internal/client"
	"github.com/2beens/sitefront/internal/config"
	"github.com/2beens/sitefront/internal/contact"
	"github.com/2beens/sitefront/internal/logging"
	"github.com/2beens/sitefront/internal/subscribe"
	"github.com/2beens/sitefront/internal/user"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	cmd := flag.String("cmd", "blogs", "command [blogs | blog | comments | comment | like | contact | subscribe | login]")
	id := flag.String("id", "", "blog/comment id, where the command needs one")
	content := flag.String("content", "", "comment content")
	parentID := flag.String("parent", "", "parent comment id, for replies")
	email := flag.String("email", "", "email address, for subscribe/login/contact")
	password := flag.String("password", "", "password, for login")
	message := flag.String("message", "", "message body, for contact")
	page := flag.Int("page", 1, "page, for blogs listing")
	limit := flag.Int("limit", 10, "page size, for blogs listing")
	search := flag.String("search", "", "search filter, for blogs listing")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Printf("Error: load config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		Environment:   cfg.Environment,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     os.Getenv("SITEFRONT_SENTRY_DSN"),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-chOsInterrupt
		log.Warnln("interrupt received, bailing out")
		cancel()
	}()

	tokens := tokenProvider(cfg)
	httpClient, err := client.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout()}, tokens)
	if err != nil {
		log.Fatalf("new api client: %s", err)
	}

	if err := run(ctx, *cmd, runParams{
		blogs:      blog.NewService(httpClient),
		contacts:   contact.NewService(httpClient),
		subscribes: subscribe.NewService(httpClient),
		users:      user.NewService(httpClient, tokens),
		id:         *id,
		content:    *content,
		parentID:   *parentID,
		email:      *email,
		password:   *password,
		message:    *message,
		filters:    blog.Filters{Page: *page, Limit: *limit, Search: *search},
	}); err != nil {
		log.Fatalf("%s: %s", *cmd, err)
	}
}

func tokenProvider(cfg *config.Config) auth.TokenProvider {
	if cfg.RedisHost != "" {
		log.Debugf("using redis credential store: %s", cfg.RedisAddr())
		return auth.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: os.Getenv("SITEFRONT_REDIS_PASS"),
			DB:       cfg.RedisDB,
		}))
	}
	log.Debugf("using file credential store: %s", cfg.CredentialsPath)
	return auth.NewFileStore(cfg.CredentialsPath)
}

type runParams struct {
	blogs      *blog.Service
	contacts   *contact.Service
	subscribes *subscribe.Service
	users      *user.Service

	id       string
	content  string
	parentID string
	email    string
	password string
	message  string
	filters  blog.Filters
}

func run(ctx context.Context, cmd string, p runParams) error {
	switch cmd {
	case "blogs":
		page := p.blogs.List(ctx, p.filters)
		if !page.Success {
			return fmt.Errorf("%s", page.Message)
		}
		log.Infof(
			"page %d/%d, %d blogs total",
			page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total,
		)
		return printJSON(page.Data)
	case "blog":
		env := p.blogs.Get(ctx, p.id)
		if !env.Success {
			return fmt.Errorf("%s", env.Message)
		}
		return printJSON(env.Data)
	case "comments":
		env := p.blogs.Comments(ctx, p.id)
		if !env.Success {
			return fmt.Errorf("%s", env.Message)
		}
		return printJSON(env.Data)
	case "comment":
		env := p.blogs.CreateComment(ctx, blog.CreateCommentPayload{
			Content:  p.content,
			BlogID:   p.id,
			ParentID: p.parentID,
		})
		if !env.Success {
			return fmt.Errorf("%s", env.Message)
		}
		return printJSON(env.Data)
	case "like":
		env := p.blogs.Like(ctx, p.id)
		if !env.Success {
			return fmt.Errorf("%s", env.Message)
		}
		log.Infof("likes now: %d", env.Data.Likes)
		return nil
	case "contact":
		env := p.contacts.Create(ctx, contact.Submission{
			Email:   p.email,
			Message: p.message,
		})
		if !env.Success {
			return fmt.Errorf("%s", env.Message)
		}
		log.Infoln(env.Message)
		return nil
	case "subscribe":
		if msg := subscribe.ValidateEmail(p.email); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		if _, err := p.subscribes.Subscribe(ctx, subscribe.Payload{Email: p.email, Source: "cli"}); err != nil {
			return err
		}
		log.Infof("subscribed: %s", p.email)
		return nil
	case "login":
		result, err := p.users.Login(ctx, user.Credentials{Email: p.email, Password: p.password})
		if err != nil {
			return err
		}
		log.Infoln("logged in, token stored")
		if result.User != nil {
			return printJSON(result.User)
		}
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
