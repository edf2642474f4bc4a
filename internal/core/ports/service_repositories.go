package ports

import (
	"context"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
)

// ServiceRequestRepository persists farmers' service requests along with
// their kind-specific details.
type ServiceRequestRepository interface {
	Add(ctx context.Context, request *service.Request) error
	Update(ctx context.Context, request *service.Request) error
	Get(ctx context.Context, id kernel.ID) (*service.Request, error)
}

// ServiceOfferRepository persists mills' answers to service requests.
type ServiceOfferRepository interface {
	Add(ctx context.Context, offer *service.Offer) error
	Update(ctx context.Context, offer *service.Offer) error
	Get(ctx context.Context, id kernel.ID) (*service.Offer, error)
	// ListByRequest returns every offer made on a request, oldest first.
	ListByRequest(ctx context.Context, requestID kernel.ID) ([]*service.Offer, error)
}

// OperationRepository persists operations. The source and the completion
// record never change once added; Update only attaches the output product.
type OperationRepository interface {
	Add(ctx context.Context, op *service.Operation) error
	Update(ctx context.Context, op *service.Operation) error
	Get(ctx context.Context, id kernel.ID) (*service.Operation, error)
}
