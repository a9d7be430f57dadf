package services

// ServiceManager aggregates all services behind one dependency for the
// HTTP layer.
type ServiceManager interface {
	Auth() AuthService
	Catalog() CatalogService
	Session() SessionService
}

type serviceManager struct {
	auth    AuthService
	catalog CatalogService
	session SessionService
}

func NewServiceManager(auth AuthService, catalog CatalogService, session SessionService) ServiceManager {
	return &serviceManager{
		auth:    auth,
		catalog: catalog,
		session: session,
	}
}

func (m *serviceManager) Auth() AuthService       { return m.auth }
func (m *serviceManager) Catalog() CatalogService { return m.catalog }
func (m *serviceManager) Session() SessionService { return m.session }
