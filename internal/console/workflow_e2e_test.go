package console

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"polarizados_ya/internal/adapter/http/dto/request"
	"polarizados_ya/internal/adapter/http/handlers"
	"polarizados_ya/internal/adapter/http/routes"
	"polarizados_ya/internal/adapter/persistence/memory"
	"polarizados_ya/internal/config"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/console/camera"
	"polarizados_ya/internal/console/inspection"
	"polarizados_ya/internal/console/orders"
	"polarizados_ya/internal/console/quotes"
	"polarizados_ya/internal/console/session"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/messaging"
	"polarizados_ya/internal/infrastructure/security"
	"polarizados_ya/internal/infrastructure/storage"
	"polarizados_ya/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newBackend serves the full API over in-memory storage.
func newBackend(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:    "test",
		CORSOrigins:    []string{"*"},
		RequestTimeout: 5 * time.Second,
		LoginRateLimit: 100,
		JWTSecret:      "e2e-secret",
		JWTExpiration:  time.Hour,
		StorageBackend: config.StorageMemory,
	}

	repos := memory.NewRepositories()
	email := messaging.NoopEmailClient{}
	whatsapp := messaging.NoopWhatsAppClient{}

	authUC := usecase.NewAuthUseCase(repos.Users,
		security.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), security.NewPasswordHasher(bcrypt.MinCost))
	orderUC := usecase.NewServiceOrderUseCase(repos.ServiceOrders, repos.Vehicles, repos.Users, repos.Notifications, email, whatsapp)

	router := routes.NewRouter(t.Context(), cfg, authUC, routes.Handlers{
		Auth:         handlers.NewAuthHandler(authUC),
		Users:        handlers.NewUserHandler(usecase.NewUserUseCase(repos.Users)),
		Vehicles:     handlers.NewVehicleHandler(usecase.NewVehicleUseCase(repos.Vehicles, repos.Users, repos.Notifications)),
		Appointments: handlers.NewAppointmentHandler(usecase.NewAppointmentUseCase(repos.Appointments, repos.Vehicles, email)),
		Inspections: handlers.NewInspectionHandler(usecase.NewInspectionUseCase(repos.Inspections, repos.Vehicles,
			storage.NewMemoryPhotoStore(), entities.DamagePolicy{})),
		Quotes:       handlers.NewQuoteHandler(usecase.NewQuoteUseCase(repos.Quotes, repos.Vehicles)),
		ServiceOrder: handlers.NewServiceOrderHandler(orderUC),
		Notification: handlers.NewNotificationHandler(usecase.NewNotificationUseCase(repos.Notifications)),
		Dashboard: handlers.NewDashboardHandler(usecase.NewDashboardUseCase(repos.Appointments, repos.ServiceOrders,
			repos.Vehicles, repos.Quotes)),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func register(t *testing.T, baseURL, email, name string, role entities.UserRole) {
	t.Helper()
	client := apiclient.NewClient(baseURL, 5*time.Second)
	_, err := client.Register(context.Background(), request.RegisterRequest{
		Email: email, Password: "secret123", Name: name, Role: string(role),
	})
	require.NoError(t, err)
}

func login(t *testing.T, baseURL, email string) *session.Session {
	t.Helper()
	s := session.New(apiclient.NewClient(baseURL, 5*time.Second), &session.MemoryTokenStore{},
		session.WithPollInterval(20*time.Millisecond))
	_, err := s.Login(context.Background(), email, "secret123")
	require.NoError(t, err)
	t.Cleanup(s.Logout)
	return s
}

func TestShopFloorWorkflow(t *testing.T) {
	ctx := context.Background()
	baseURL := newBackend(t)

	register(t, baseURL, "admin@polarizadosya.test", "Admin", entities.UserRoleAdmin)
	register(t, baseURL, "pedro@polarizadosya.test", "Pedro", entities.UserRoleTecnico)

	admin := login(t, baseURL, "admin@polarizadosya.test")
	api := admin.Client()
	require.True(t, admin.HasRole(entities.UserRoleAdmin))

	techs, err := api.ListTechnicians(ctx)
	require.NoError(t, err)
	require.Len(t, techs, 1)
	pedro := techs[0]

	vehicle, err := api.CreateVehicle(ctx, request.VehicleRequest{
		Plate: "abc123", Brand: "Mazda", Model: "3", Year: 2022,
		ClientName: "Laura Gómez", ClientPhone: "3001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", vehicle.Plate)

	today := time.Now().UTC().Format(entities.AppointmentDateLayout)
	appt, err := api.CreateAppointment(ctx, request.AppointmentRequest{
		ClientName: "Laura Gómez", ClientPhone: "3001234567", Plate: "ABC123",
		Date: today, TimeSlot: entities.TimeSlots[0], Services: []string{"polarizado"},
	})
	require.NoError(t, err)
	assert.Equal(t, vehicle.ID, appt.VehicleID)

	vehicle, err = api.GetVehicleByPlate(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, string(entities.VehicleStatusAgendado), vehicle.Status)

	// Check-in inspection with one photo.
	wizard := inspection.NewWizard(api, camera.NewController(camera.NewFakeDevice(64, 48)), entities.DamagePolicy{})
	require.NoError(t, wizard.SelectVehicle(vehicle))
	require.NoError(t, wizard.ToPhotos())
	cam := wizard.Camera()
	require.NoError(t, cam.Open(ctx, 0))
	_, err = cam.Capture(ctx)
	require.NoError(t, err)
	require.NoError(t, cam.Confirm(ctx))
	require.NoError(t, wizard.ToChecklist(ctx))
	require.NoError(t, wizard.SetItem("windshield", entities.ConditionFair, true, "piquete"))

	insp, err := wizard.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"inspections/" + insp.ID + "/1.jpg"}, insp.Photos)

	vehicle, err = api.GetVehicle(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entities.VehicleStatusIngresado), vehicle.Status)

	// Quote for the client.
	builder := quotes.NewBuilder(api)
	builder.SelectVehicle(vehicle)
	require.NoError(t, builder.AddItem(entities.ServicePolarizado))
	require.NoError(t, builder.AddItem(entities.ServiceNanoceramica))
	assert.Error(t, builder.AddItem(entities.ServicePolarizado))
	quote, err := builder.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1150000), quote.Subtotal)
	assert.Equal(t, int64(218500), quote.Tax)
	assert.Equal(t, int64(1368500), quote.Total)
	require.NoError(t, builder.Approve(ctx, &quote, "", ""))
	assert.Equal(t, "approved", quote.Status)

	// Service order assigned to the technician.
	adminOrders := orders.NewLifecycle(admin, api)
	order, err := adminOrders.Create(ctx, orders.Draft{
		VehicleID:    vehicle.ID,
		QuoteID:      quote.ID,
		Services:     []entities.ServiceCode{entities.ServicePolarizado},
		TechnicianID: pedro.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "agendado", order.Status)

	tech := login(t, baseURL, "pedro@polarizadosya.test")
	assert.Eventually(t, func() bool { return tech.Unread() == 1 }, 2*time.Second, 10*time.Millisecond)

	techOrders := orders.NewLifecycle(tech, tech.Client())
	assert.False(t, techOrders.CanCreate())
	mine, err := techOrders.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	for i := 0; i < 3; i++ {
		require.NoError(t, techOrders.Advance(ctx, &mine[0]))
	}
	assert.Equal(t, "terminado", mine[0].Status)
	assert.ErrorIs(t, techOrders.Advance(ctx, &mine[0]), entities.ErrTerminalState)

	stats, err := api.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TodayAppointments)
	assert.Equal(t, 1, stats.OrdersByStatus["terminado"])
	assert.Equal(t, 0, stats.TotalActiveOrders)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 1, stats.TotalVehicles)
	assert.Equal(t, 0, stats.PendingQuotes)
}

func TestServerRejectionsReachTheConsole(t *testing.T) {
	ctx := context.Background()
	baseURL := newBackend(t)

	register(t, baseURL, "asesor@polarizadosya.test", "Ana", entities.UserRoleAsesor)
	asesor := login(t, baseURL, "asesor@polarizadosya.test")
	api := asesor.Client()

	_, err := api.CreateVehicle(ctx, request.VehicleRequest{
		Plate: "XYZ789", Brand: "Kia", Model: "Rio", Year: 2020, ClientName: "Juan", ClientPhone: "300",
	})
	require.NoError(t, err)
	_, err = api.CreateVehicle(ctx, request.VehicleRequest{
		Plate: "xyz789", Brand: "Kia", Model: "Rio", Year: 2020, ClientName: "Juan", ClientPhone: "300",
	})
	assert.True(t, apiclient.IsRejection(err, 409))

	lc := orders.NewLifecycle(asesor, api)
	_, err = lc.Create(ctx, orders.Draft{VehicleID: "missing", Services: []entities.ServiceCode{entities.ServicePolarizado}})
	assert.True(t, apiclient.IsRejection(err, 404))

	_, err = apiclient.NewClient(baseURL, 5*time.Second).DashboardStats(ctx)
	assert.True(t, apiclient.IsRejection(err, 401), "anonymous calls are rejected, not treated as expiry")
}
