package service

import (
	"context"

	"github.com/goliatone/go-discovery/activity"
	"github.com/goliatone/go-discovery/command"
	"github.com/goliatone/go-discovery/pkg/types"
	"github.com/goliatone/go-discovery/query"
	"github.com/goliatone/go-discovery/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goliatone/go-discovery/service"

// Service is the entry point for go-discovery. It wires a registry,
// transaction runners, and hooks into command/query facades supplied to the
// host application.
type Service struct {
	cfg          Config
	registry     types.InvokerRegistry
	hooks        types.Hooks
	activityRepo types.ActivityRepository
	tracer       trace.Tracer
	commands     Commands
	queries      Queries
}

// Commands exposes the service command handlers.
type Commands struct {
	Transact *command.TransactCommand
}

// Queries exposes read helpers.
type Queries struct {
	Get           *query.GetQuery
	Validate      *query.ValidateQuery
	ActivityFeed  *query.ActivityFeedQuery
	ActivityStats *query.ActivityStatsQuery
}

// Config captures the dependencies the service needs. Registry defaults to
// the process-wide registry.Instance(). When ActivitySink is set, registrations
// made through the service and committed transactions are journaled before
// Hooks run.
type Config struct {
	Registry           types.InvokerRegistry
	TxRunner           types.TxRunner
	TxRunners          map[string]types.TxRunner
	Hooks              types.Hooks
	ActivitySink       types.ActivitySink
	ActivityRepository types.ActivityRepository
	Clock              types.Clock
	IDGenerator        types.IDGenerator
	Logger             types.Logger
	TracerProvider     trace.TracerProvider
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}
	s := &Service{
		cfg:          norm,
		registry:     norm.Registry,
		hooks:        activity.Hooks(norm.ActivitySink, norm.Hooks, norm.Logger),
		activityRepo: actRepo,
		tracer:       norm.TracerProvider.Tracer(tracerName),
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Registry == nil {
		cfg.Registry = registry.Instance()
	}
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Registry returns the registry the service resolves invokers from.
func (s *Service) Registry() types.InvokerRegistry {
	if s == nil {
		return nil
	}
	return s.registry
}

// Register binds inv to key on the service registry. AfterRegister hooks fire
// only when the binding is new.
func (s *Service) Register(key string, inv types.RepositoryInvoker) bool {
	if s == nil || s.registry == nil {
		return false
	}
	if !s.registry.Register(key, inv) {
		return false
	}
	if s.hooks.AfterRegister != nil {
		s.hooks.AfterRegister(context.Background(), types.RegistrationEvent{
			Key:        key,
			Invoker:    inv,
			OccurredAt: s.cfg.Clock.Now(),
		})
	}
	return true
}

// Lookup resolves the invoker bound to key.
func (s *Service) Lookup(key string) (types.RepositoryInvoker, bool) {
	if s == nil || s.registry == nil {
		return nil, false
	}
	return s.registry.Lookup(key)
}

// Ready reports whether the service can serve both reads and transactions.
func (s *Service) Ready() bool {
	return s != nil && s.registry != nil && s.hasTxRunner()
}

// HealthCheck surfaces missing wiring so transports can fail fast at startup.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.registry == nil {
		return types.ErrMissingRegistry
	}
	if !s.hasTxRunner() {
		return types.ErrMissingTxRunner
	}
	return nil
}

// Get resolves key and reads through its invoker inside a span.
func (s *Service) Get(ctx context.Context, key string, q any, collection bool) (any, error) {
	ctx, span := s.startSpan(ctx, "discovery.get", key,
		attribute.Bool("discovery.collection", collection),
	)
	out, err := s.queries.Get.Query(ctx, query.GetInput{Key: key, Query: q, Collection: collection})
	endSpan(span, err)
	return out, err
}

// Validate resolves key and evaluates check through its invoker inside a span.
func (s *Service) Validate(ctx context.Context, key string, q any, check func(any) bool) (bool, error) {
	ctx, span := s.startSpan(ctx, "discovery.validate", key)
	ok, err := s.queries.Validate.Query(ctx, query.ValidateInput{Key: key, Query: q, Check: check})
	if err == nil {
		span.SetAttributes(attribute.Bool("discovery.valid", ok))
	}
	endSpan(span, err)
	return ok, err
}

// Transact runs input through the transact command inside a span and returns
// the populated result.
func (s *Service) Transact(ctx context.Context, input command.TransactInput) (command.TransactResult, error) {
	ctx, span := s.startSpan(ctx, "discovery.transact", input.Key,
		attribute.String("discovery.method", input.Method),
	)
	result := command.TransactResult{}
	if input.Result == nil {
		input.Result = &result
	}
	err := s.commands.Transact.Execute(ctx, input)
	endSpan(span, err)
	if err != nil {
		return command.TransactResult{}, err
	}
	return *input.Result, nil
}

func (s *Service) hasTxRunner() bool {
	return s.cfg.TxRunner != nil || len(s.cfg.TxRunners) > 0
}

func (s *Service) startSpan(ctx context.Context, name, key string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("discovery.key", key))
	return s.tracer.Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (s *Service) buildCommands() Commands {
	return Commands{
		Transact: command.NewTransactCommand(command.TransactCommandConfig{
			Registry:  s.registry,
			TxRunner:  s.cfg.TxRunner,
			TxRunners: s.cfg.TxRunners,
			Hooks:     s.hooks,
			Clock:     s.cfg.Clock,
			IDGen:     s.cfg.IDGenerator,
			Logger:    s.cfg.Logger,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		Get:           query.NewGetQuery(s.registry, s.cfg.Logger),
		Validate:      query.NewValidateQuery(s.registry, s.cfg.Logger),
		ActivityFeed:  query.NewActivityFeedQuery(s.activityRepo),
		ActivityStats: query.NewActivityStatsQuery(s.activityRepo),
	}
}
