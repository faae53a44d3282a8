package services

import (
	"context"
	"errors"
	"sync"

	"maintenance-portal/internal/dto"
	"maintenance-portal/internal/entities"
	"maintenance-portal/internal/integrations/backend"
	"maintenance-portal/internal/repositories"
	"maintenance-portal/pkg/utils"
)

// Фейковые репозитории: данные в памяти, счётчики вызовов и внедряемые ошибки.

var errAPIDown = errors.New("api indisponible")

func staffCtx() context.Context {
	return utils.WithSession(context.Background(), &dto.SessionDTO{ID: "s1", UserID: 1, Token: "tok", Username: "admin", IsStaff: true})
}

func techCtx() context.Context {
	return utils.WithSession(context.Background(), &dto.SessionDTO{ID: "s2", UserID: 2, Token: "tok-tech", Username: "tech"})
}

type fakeDemandeRepo struct {
	mu            sync.Mutex
	demandes      map[int]*entities.Demande
	statusCalls   []string
	created       []dto.CreateDemandeDTO
	updateErr     error
	createErr     error
	lastToken     string
	nextCreatedID int
}

func newFakeDemandeRepo(demandes ...entities.Demande) *fakeDemandeRepo {
	r := &fakeDemandeRepo{demandes: map[int]*entities.Demande{}, nextCreatedID: 100}
	for i := range demandes {
		d := demandes[i]
		r.demandes[d.ID] = &d
	}
	return r
}

func (r *fakeDemandeRepo) GetDemandes(_ context.Context, token string) repositories.ListResult[entities.Demande] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastToken = token
	items := []entities.Demande{}
	for _, d := range r.demandes {
		items = append(items, *d)
	}
	return repositories.ListResult[entities.Demande]{Items: items, Outcome: repositories.OutcomeOK}
}

func (r *fakeDemandeRepo) FindDemande(_ context.Context, _ string, id int) (*entities.Demande, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.demandes[id]
	if !ok {
		return nil, &backend.APIError{StatusCode: 404}
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDemandeRepo) CreateDemande(_ context.Context, payload dto.CreateDemandeDTO) (*entities.Demande, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, payload)
	r.nextCreatedID++
	d := &entities.Demande{
		ID:            r.nextCreatedID,
		Nom:           payload.Nom,
		Prenom:        payload.Prenom,
		Email:         payload.Email,
		TypeMateriel:  payload.TypeMateriel,
		PanneDeclaree: payload.PanneDeclaree,
		Status:        payload.Status,
	}
	r.demandes[d.ID] = d
	return d, nil
}

func (r *fakeDemandeRepo) UpdateDemandeStatus(_ context.Context, _ string, id int, status string) (*entities.Demande, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCalls = append(r.statusCalls, status)
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	d, ok := r.demandes[id]
	if !ok {
		return nil, &backend.APIError{StatusCode: 404}
	}
	d.Status = status
	copied := *d
	return &copied, nil
}

type fakeInterventionRepo struct {
	mu            sync.Mutex
	interventions map[int]*entities.Intervention
	created       []dto.CreateInterventionDTO
	updates       []dto.UpdateInterventionDTO
	statusUpdates []dto.InterventionStatusDTO
	createErr     error
	statusErr     error
	nextID        int
}

func newFakeInterventionRepo(interventions ...entities.Intervention) *fakeInterventionRepo {
	r := &fakeInterventionRepo{interventions: map[int]*entities.Intervention{}, nextID: 500}
	for i := range interventions {
		it := interventions[i]
		r.interventions[it.ID] = &it
	}
	return r
}

func (r *fakeInterventionRepo) GetInterventions(_ context.Context, _ string) repositories.ListResult[entities.Intervention] {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []entities.Intervention{}
	for _, it := range r.interventions {
		items = append(items, *it)
	}
	return repositories.ListResult[entities.Intervention]{Items: items, Outcome: repositories.OutcomeOK}
}

func (r *fakeInterventionRepo) FindIntervention(_ context.Context, _ string, id int) (*entities.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.interventions[id]
	if !ok {
		return nil, &backend.APIError{StatusCode: 404}
	}
	copied := *it
	return &copied, nil
}

func (r *fakeInterventionRepo) CreateIntervention(_ context.Context, _ string, payload dto.CreateInterventionDTO) (*entities.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, payload)
	r.nextID++
	it := &entities.Intervention{
		ID:         r.nextID,
		Status:     payload.Status,
		Priorite:   payload.Priorite,
		Technicien: payload.Technicien,
	}
	it.Demande.SetValid(payload.Demande)
	r.interventions[it.ID] = it
	return it, nil
}

func (r *fakeInterventionRepo) UpdateIntervention(_ context.Context, _ string, id int, payload dto.UpdateInterventionDTO) (*entities.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, payload)
	it := r.interventions[id]
	it.Priorite = payload.Priorite
	it.Technicien = payload.Technicien
	it.ComposantsUtilises = payload.ComposantsUtilises
	it.Description = payload.Description
	copied := *it
	return &copied, nil
}

func (r *fakeInterventionRepo) UpdateInterventionStatus(_ context.Context, _ string, id int, payload dto.InterventionStatusDTO) (*entities.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statusErr != nil {
		return nil, r.statusErr
	}
	r.statusUpdates = append(r.statusUpdates, payload)
	it := r.interventions[id]
	it.Status = payload.Status
	it.DateFin = utils.NullString(payload.DateFin)
	if payload.CauseIrreparable != "" {
		it.CauseIrreparable = utils.NullString(payload.CauseIrreparable)
	}
	copied := *it
	return &copied, nil
}

type fakeEquipementRepo struct {
	mu        sync.Mutex
	items     []entities.Equipement
	created   []dto.EquipementDTO
	createErr error
	listErr   error
}

func (r *fakeEquipementRepo) GetEquipements(_ context.Context, _ string) repositories.ListResult[entities.Equipement] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return repositories.ListResult[entities.Equipement]{Items: []entities.Equipement{}, Outcome: repositories.OutcomeDegraded, Err: r.listErr}
	}
	items := append([]entities.Equipement{}, r.items...)
	return repositories.ListResult[entities.Equipement]{Items: items, Outcome: repositories.OutcomeOK}
}

func (r *fakeEquipementRepo) FindEquipement(_ context.Context, _ string, id int) (*entities.Equipement, error) {
	return &entities.Equipement{ID: id}, nil
}

func (r *fakeEquipementRepo) CreateEquipement(_ context.Context, _ string, payload dto.EquipementDTO) (*entities.Equipement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, payload)
	e := entities.Equipement{
		ID:          len(r.created),
		Designation: payload.Designation,
		Observation: payload.Observation,
	}
	r.items = append(r.items, e)
	return &e, nil
}

func (r *fakeEquipementRepo) UpdateEquipement(_ context.Context, _ string, id int, payload dto.EquipementDTO) (*entities.Equipement, error) {
	return &entities.Equipement{ID: id, Designation: payload.Designation}, nil
}

func (r *fakeEquipementRepo) DeleteEquipement(_ context.Context, _ string, _ int) error {
	return nil
}

func (r *fakeEquipementRepo) ExportPDF(_ context.Context, _ string) (*repositories.PDFDocument, error) {
	return nil, errAPIDown
}

func (r *fakeEquipementRepo) SendPDFByEmail(_ context.Context, _ string, _ dto.EquipementsPDFEmailDTO) error {
	return nil
}

type fakeUserRepo struct {
	users []entities.User
	calls int
	err   error
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _ string) repositories.ListResult[entities.User] {
	r.calls++
	if r.err != nil {
		return repositories.ListResult[entities.User]{Items: []entities.User{}, Outcome: repositories.OutcomeDegraded, Err: r.err}
	}
	return repositories.ListResult[entities.User]{Items: r.users, Outcome: repositories.OutcomeOK}
}

func (r *fakeUserRepo) FindUser(_ context.Context, _ string, id int) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, &backend.APIError{StatusCode: 404}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, _ string, payload dto.CreateUserDTO) (*entities.User, error) {
	u := entities.User{ID: len(r.users) + 1, Username: payload.Username, Email: payload.Email, IsStaff: payload.IsStaff}
	r.users = append(r.users, u)
	return &u, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, _ string, id int, payload dto.UpdateUserDTO) (*entities.User, error) {
	return &entities.User{ID: id, Username: payload.Username, Email: payload.Email, IsStaff: payload.IsStaff}, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, _ string, _ int) error {
	return nil
}
