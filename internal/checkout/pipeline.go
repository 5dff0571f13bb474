package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcart/internal/checkout/steps"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
)

type Request struct {
	UserID          string
	ShippingAddress domain.Address
	BillingAddress  domain.Address
}

// Pipeline converts a user's cart into an order. All steps of a run share one unit of work,
// so stock deduction, the new order and the cleared cart are committed together or not at all.
type Pipeline struct {
	uow   port.UnitOfWork
	steps []steps.Step
}

func NewPipeline(uow port.UnitOfWork, pricing domain.PricingPolicy) (Pipeline, error) {
	var p Pipeline

	if uow == nil {
		return p, errors.New("uow is nil")
	}

	pSteps, err := buildSteps(pricing)
	if err != nil {
		return p, fmt.Errorf("buildSteps: %w", err)
	}

	return Pipeline{
		uow:   uow,
		steps: pSteps,
	}, nil
}

func (p Pipeline) Run(ctx context.Context, req Request) (*domain.Order, error) {
	if req.UserID == "" {
		return nil, domain.ErrEmptyUserID
	}

	var order *domain.Order

	err := p.uow.Do(ctx, func(repos port.Repositories) error {
		state := &steps.State{
			UserID:          req.UserID,
			ShippingAddress: req.ShippingAddress,
			BillingAddress:  req.BillingAddress,
		}

		for idx, step := range p.steps {
			if err := step.Run(ctx, repos, state); err != nil {
				return fmt.Errorf("step.Run[%d][%s]: %w", idx, step.Name(), err)
			}
		}

		order = state.Order

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("uow.Do: %w", err)
	}

	return order, nil
}

func buildSteps(pricing domain.PricingPolicy) ([]steps.Step, error) {
	buildOrder, err := steps.NewBuildOrder(pricing)
	if err != nil {
		return nil, fmt.Errorf("steps.NewBuildOrder: %w", err)
	}

	return []steps.Step{
		steps.NewLoadCart(),
		buildOrder,
		steps.NewDeductStock(),
		steps.NewSaveOrder(),
		steps.NewClearCart(),
	}, nil
}
