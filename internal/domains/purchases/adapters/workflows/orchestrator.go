package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/storefront-admin/internal/domains/purchases/application/types"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	"github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
	checkoutworkflows "github.com/Apurer/storefront-admin/internal/durable/temporal/workflows/checkout"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalCheckoutWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineCheckoutWorkflows)(nil)
)

// TemporalCheckoutWorkflows runs checkouts as Temporal workflows and waits for the result.
type TemporalCheckoutWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalCheckoutWorkflows(c client.Client) *TemporalCheckoutWorkflows {
	return &TemporalCheckoutWorkflows{client: c, taskQueue: checkoutworkflows.CheckoutTaskQueue}
}

func (o *TemporalCheckoutWorkflows) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Receipt, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := checkoutWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:                                       workflowID,
		TaskQueue:                                o.taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.CheckoutWorkflowName,
		checkoutworkflows.CheckoutWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) || strings.TrimSpace(input.IdempotencyKey) == "" {
			return nil, fault.Storage("start checkout workflow", err)
		}
		// A retry with the same key joins the checkout already running.
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var receipt domain.Receipt
	if err := run.Get(ctx, &receipt); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &receipt, nil
}

// fromWorkflowError restores the fault kind the activity encoded as the
// application error type.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return fault.Wrap(fault.FromName(appErr.Type()), "checkout", err)
	}
	return fault.Storage("checkout workflow", err)
}

// InlineCheckoutWorkflows commits directly through the ledger service, used
// when Temporal is not configured and in tests.
type InlineCheckoutWorkflows struct {
	service ports.Service
}

func NewInlineCheckoutWorkflows(service ports.Service) *InlineCheckoutWorkflows {
	return &InlineCheckoutWorkflows{service: service}
}

func (o *InlineCheckoutWorkflows) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Receipt, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout workflows not configured")
	}
	return o.service.Commit(ctx, input.ClientID, input.Lines)
}

func checkoutWorkflowID(input types.CheckoutInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("checkout-%d-key-%s", input.ClientID, key)
	}
	return fmt.Sprintf("checkout-%d-%s", input.ClientID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
