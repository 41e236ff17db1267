package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/estate-listing-api/internal/application/dto"
	"github.com/oksasatya/estate-listing-api/internal/domain/entity"
	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/repository"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
	"github.com/oksasatya/estate-listing-api/internal/metrics"
	"github.com/oksasatya/estate-listing-api/pkg/helpers"
	"github.com/oksasatya/estate-listing-api/pkg/mailer"
	mailtpl "github.com/oksasatya/estate-listing-api/pkg/mailer/templates"
)

type ProposalService struct {
	proposals  repository.AgentProposalRepository
	properties repository.PropertyRepository
	users      repository.UserRepository
	notifier   *NotificationService
	mail       Mailer
	brand      mailtpl.Brand
	log        *logrus.Logger
}

// NewProposalService wires agent proposals. notifier and mail may be nil.
func NewProposalService(proposals repository.AgentProposalRepository, properties repository.PropertyRepository, users repository.UserRepository, notifier *NotificationService, mail Mailer, brand mailtpl.Brand, log *logrus.Logger) *ProposalService {
	return &ProposalService{
		proposals:  proposals,
		properties: properties,
		users:      users,
		notifier:   notifier,
		mail:       mail,
		brand:      brand,
		log:        helpers.OrNop(log),
	}
}

// Create opens a DRAFT proposal. Only agents and admins may propose.
func (s *ProposalService) Create(ctx context.Context, actor Actor, req dto.CreateProposalRequest) (*entity.AgentProposal, error) {
	if actor.Role != entity.RoleAgent && !actor.IsAdmin() {
		return nil, errs.Forbidden("only agents can submit proposals")
	}
	if req.CommissionRate == nil {
		return nil, errs.Validation(errs.CodeInvalidCommissionRate, "commission rate is required")
	}
	p, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, fromRepo(err, errs.PropertyNotFound, req.PropertyID)
	}
	rate, err := valueobject.NewCommissionRate(*req.CommissionRate)
	if err != nil {
		return nil, err
	}
	prop := entity.NewAgentProposal(actor.UserID, p.ID, rate, req.Pitch)
	saved, err := s.proposals.Save(ctx, prop)
	if err != nil {
		return nil, repoErr(err)
	}
	metrics.ProposalTransitionsTotal.WithLabelValues(string(saved.Status)).Inc()
	return saved, nil
}

// Get is visible to the proposing agent, the property owner and admins.
func (s *ProposalService) Get(ctx context.Context, actor Actor, id string) (*entity.AgentProposal, error) {
	prop, p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(prop.UserID) && !actor.CanManage(p.OwnerID) {
		return nil, errs.ProposalNotFound(id)
	}
	return prop, nil
}

func (s *ProposalService) ListMine(ctx context.Context, actor Actor) ([]*entity.AgentProposal, error) {
	ps, err := s.proposals.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, repoErr(err)
	}
	return ps, nil
}

func (s *ProposalService) ListForProperty(ctx context.Context, actor Actor, propertyID string) ([]*entity.AgentProposal, error) {
	p, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, fromRepo(err, errs.PropertyNotFound, propertyID)
	}
	if !actor.CanManage(p.OwnerID) {
		return nil, errs.Forbidden("only the property owner can see its proposals")
	}
	ps, err := s.proposals.FindByPropertyID(ctx, p.ID)
	if err != nil {
		return nil, repoErr(err)
	}
	return ps, nil
}

func (s *ProposalService) Update(ctx context.Context, actor Actor, id string, req dto.UpdateProposalRequest) (*entity.AgentProposal, error) {
	prop, _, err := s.agentOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	var rate *valueobject.CommissionRate
	if req.CommissionRate != nil {
		r, err := valueobject.NewCommissionRate(*req.CommissionRate)
		if err != nil {
			return nil, err
		}
		rate = &r
	}
	if err := prop.Revise(rate, req.Pitch); err != nil {
		return nil, err
	}
	return s.save(ctx, prop)
}

// Activate moves DRAFT to ACTIVE and tells the property owner. Activating an
// ACTIVE proposal is a no-op; an ARCHIVED one cannot be activated.
func (s *ProposalService) Activate(ctx context.Context, actor Actor, id string) (*entity.AgentProposal, error) {
	prop, p, err := s.agentOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	from := prop.Status
	if err := prop.Activate(); err != nil {
		return nil, err
	}
	if prop.Status == from {
		return prop, nil
	}
	saved, err := s.save(ctx, prop)
	if err != nil {
		return nil, err
	}
	metrics.ProposalTransitionsTotal.WithLabelValues(string(saved.Status)).Inc()
	s.notifyOwner(ctx, saved, p)
	return saved, nil
}

// Archive may be done by the agent, the property owner or an admin.
func (s *ProposalService) Archive(ctx context.Context, actor Actor, id string) (*entity.AgentProposal, error) {
	prop, p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(prop.UserID) && !actor.CanManage(p.OwnerID) {
		return nil, errs.Forbidden("not allowed to archive this proposal")
	}
	if prop.IsArchived() {
		return prop, nil
	}
	prop.Archive()
	saved, err := s.save(ctx, prop)
	if err != nil {
		return nil, err
	}
	metrics.ProposalTransitionsTotal.WithLabelValues(string(saved.Status)).Inc()
	return saved, nil
}

func (s *ProposalService) Delete(ctx context.Context, actor Actor, id string) error {
	prop, _, err := s.agentOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	return repoErr(s.proposals.DeleteByID(ctx, prop.ID))
}

func (s *ProposalService) load(ctx context.Context, id string) (*entity.AgentProposal, *entity.Property, error) {
	prop, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fromRepo(err, errs.ProposalNotFound, id)
	}
	p, err := s.properties.FindByID(ctx, prop.PropertyID)
	if err != nil {
		return nil, nil, fromRepo(err, errs.PropertyNotFound, prop.PropertyID)
	}
	return prop, p, nil
}

func (s *ProposalService) agentOwned(ctx context.Context, actor Actor, id string) (*entity.AgentProposal, *entity.Property, error) {
	prop, p, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !actor.CanManage(prop.UserID) {
		return nil, nil, errs.Forbidden("only the proposing agent can change this proposal")
	}
	return prop, p, nil
}

func (s *ProposalService) save(ctx context.Context, prop *entity.AgentProposal) (*entity.AgentProposal, error) {
	saved, err := s.proposals.Save(ctx, prop)
	if err != nil {
		return nil, fromRepo(err, errs.ProposalNotFound, prop.ID)
	}
	return saved, nil
}

// notifyOwner pushes and emails the property owner. Failures are logged only.
func (s *ProposalService) notifyOwner(ctx context.Context, prop *entity.AgentProposal, p *entity.Property) {
	owner, err := s.users.FindByID(ctx, p.OwnerID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", p.OwnerID).Warn("load property owner failed")
		return
	}
	agentName := "An agent"
	if agent, err := s.users.FindByID(ctx, prop.UserID); err == nil && agent.FullName() != "" {
		agentName = agent.FullName()
	}
	title := "New agent proposal"
	body := fmt.Sprintf("%s proposed to represent %s at %s commission", agentName, p.StreetAddress, prop.CommissionRate)
	if s.notifier != nil {
		if _, err := s.notifier.Notify(ctx, owner.ID, title, body, entity.NotificationProposal); err != nil {
			s.log.WithError(err).WithField("proposal_id", prop.ID).Warn("proposal notification failed")
		}
	}
	if s.mail != nil {
		opts := []mailtpl.Option{mailtpl.WithTime(time.Now())}
		if s.brand.AppURL != "" {
			opts = append(opts, mailtpl.WithActionURL(strings.TrimRight(s.brand.AppURL, "/")+"/proposals/"+prop.ID))
		}
		s.mail.SendAsync(ctx, mailer.EmailJob{
			To:       owner.Email.String(),
			Template: mailtpl.ProposalActivated,
			Data: mailtpl.NewProposalActivatedData(s.brand, owner.FullName(), owner.Email.String(),
				agentName, p.StreetAddress, prop.CommissionRate.String(), opts...),
		})
	}
}
