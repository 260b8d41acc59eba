package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/config"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/console/camera"
	"polarizados_ya/internal/console/inspection"
	"polarizados_ya/internal/console/orders"
	"polarizados_ya/internal/console/quotes"
	"polarizados_ya/internal/console/session"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/logger"

	"go.uber.org/zap"
)

var errNoSession = errors.New("no hay sesión activa, ejecuta 'console login'")

type console struct {
	cfg  *config.ConsoleConfig
	sess *session.Session
	out  io.Writer
}

func (a *console) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.sess.Logout()
		fmt.Fprintln(a.out, "Sesión cerrada.")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "dashboard":
		return a.dashboard(ctx)
	case "orders":
		return a.listOrders(ctx, args)
	case "advance":
		return a.advance(ctx, args)
	case "assign":
		return a.assign(ctx, args)
	case "quote":
		return a.quote(ctx, args)
	case "inspect":
		return a.inspect(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	}
	return fmt.Errorf("comando desconocido %q\n%s", command, usage)
}

func (a *console) requireSession(ctx context.Context) error {
	ok, err := a.sess.Init(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errNoSession
	}
	return nil
}

func (a *console) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "correo del usuario")
	password := fs.String("password", os.Getenv("CONSOLE_PASSWORD"), "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.sess.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	logger.WithContext(ctx).Info("[console][login] session started",
		zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	fmt.Fprintf(a.out, "Bienvenido, %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *console) whoami(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	user := a.sess.User()
	unread, err := a.sess.Client().UnreadCount(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\nRol: %s\nNotificaciones sin leer: %d\n", user.Name, user.Email, user.Role, unread)
	return nil
}

func (a *console) dashboard(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	stats, err := a.sess.Client().DashboardStats(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Citas de hoy\t%d\n", stats.TodayAppointments)
	fmt.Fprintf(tw, "Órdenes activas\t%d\n", stats.TotalActiveOrders)
	fmt.Fprintf(tw, "Terminadas hoy\t%d\n", stats.CompletedToday)
	fmt.Fprintf(tw, "Vehículos\t%d\n", stats.TotalVehicles)
	fmt.Fprintf(tw, "Cotizaciones pendientes\t%d\n", stats.PendingQuotes)
	for _, s := range entities.ServiceStatuses {
		fmt.Fprintf(tw, "  %s\t%d\n", s, stats.OrdersByStatus[string(s)])
	}
	return tw.Flush()
}

func (a *console) listOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	status := fs.String("status", "", "filtra por estado")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	list, err := orders.NewLifecycle(a.sess, a.sess.Client()).List(ctx, entities.ServiceStatus(*status))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No hay órdenes.")
		return nil
	}

	byStatus := orders.Partition(list)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, s := range entities.ServiceStatuses {
		group := byStatus[s]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(tw, "== %s (%d)\n", s, len(group))
		for _, o := range group {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, strings.Join(o.Services, ","), o.AssignedTechnicianName)
		}
	}
	return tw.Flush()
}

func (a *console) advance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("advance", flag.ContinueOnError)
	id := fs.String("id", "", "id de la orden")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return apiclient.NewValidationError("id", "indica la orden con -id")
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	api := a.sess.Client()
	order, err := api.GetServiceOrder(ctx, *id)
	if err != nil {
		return err
	}
	from := order.Status
	if err := orders.NewLifecycle(a.sess, api).Advance(ctx, &order); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Orden %s: %s -> %s\n", order.ID, from, order.Status)
	return nil
}

func (a *console) assign(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	id := fs.String("id", "", "id de la orden")
	tech := fs.String("tech", "", "id o email del técnico")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *tech == "" {
		return apiclient.NewValidationError("tech", "indica la orden con -id y el técnico con -tech")
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	api := a.sess.Client()
	technicians, err := api.ListTechnicians(ctx)
	if err != nil {
		return err
	}
	technician, ok := findTechnician(technicians, *tech)
	if !ok {
		return apiclient.NewValidationError("tech", "técnico no encontrado")
	}
	order, err := api.GetServiceOrder(ctx, *id)
	if err != nil {
		return err
	}
	if err := orders.NewLifecycle(a.sess, api).AssignTechnician(ctx, &order, technician); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Orden %s asignada a %s\n", order.ID, technician.Name)
	return nil
}

func findTechnician(list []response.UserResponse, ref string) (response.UserResponse, bool) {
	for _, u := range list {
		if u.ID == ref || strings.EqualFold(u.Email, ref) {
			return u, true
		}
	}
	return response.UserResponse{}, false
}

func (a *console) quote(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	plate := fs.String("plate", "", "placa del vehículo")
	services := fs.String("services", "", "servicios separados por coma")
	notes := fs.String("notes", "", "notas")
	approve := fs.Bool("approve", false, "aprobar la cotización al crearla")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	api := a.sess.Client()
	vehicle, err := vehicleByPlate(ctx, api, *plate)
	if err != nil {
		return err
	}

	b := quotes.NewBuilder(api)
	b.SelectVehicle(vehicle)
	b.SetNotes(*notes)
	for _, code := range splitList(*services) {
		if err := b.AddItem(entities.ServiceCode(code)); err != nil {
			return err
		}
	}
	totals := b.Totals()

	q, err := b.Submit(ctx)
	if err != nil {
		return err
	}
	if *approve {
		if err := b.Approve(ctx, &q, "", ""); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Cotización\t%s\t\n", q.ID)
	fmt.Fprintf(tw, "Subtotal\t%d\t\n", totals.Subtotal)
	fmt.Fprintf(tw, "IVA 19%%\t%d\t\n", totals.Tax)
	fmt.Fprintf(tw, "Total\t%d\t\n", totals.Total)
	fmt.Fprintf(tw, "Estado\t%s\t\n", q.Status)
	return tw.Flush()
}

// damageFlags collects repeated -damage area=condition[:notes] values.
type damageFlags []damageEntry

type damageEntry struct {
	area      string
	condition entities.Condition
	notes     string
}

func (d *damageFlags) String() string {
	parts := make([]string, len(*d))
	for i, e := range *d {
		parts[i] = e.area + "=" + string(e.condition)
	}
	return strings.Join(parts, ",")
}

func (d *damageFlags) Set(v string) error {
	area, rest, ok := strings.Cut(v, "=")
	if !ok || area == "" {
		return fmt.Errorf("formato esperado area=condicion[:notas], recibido %q", v)
	}
	condition, notes, _ := strings.Cut(rest, ":")
	*d = append(*d, damageEntry{area: area, condition: entities.Condition(condition), notes: notes})
	return nil
}

func (a *console) inspect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	plate := fs.String("plate", "", "placa del vehículo")
	photos := fs.Int("photos", 0, "fotos a capturar")
	frames := fs.String("frames", a.cfg.CameraDir, "directorio con los cuadros de la cámara")
	front := fs.Bool("front", false, "usar la cámara frontal")
	order := fs.String("order", "", "orden de servicio asociada")
	notes := fs.String("notes", "", "observaciones generales")
	requireNotes := fs.Bool("require-damage-notes", false, "exige notas en las áreas con daño")
	var damages damageFlags
	fs.Var(&damages, "damage", "área con daño, area=condicion[:notas] (repetible)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *photos < 0 || *photos > a.cfg.MaxPhotos {
		return apiclient.NewValidationError("photos", fmt.Sprintf("entre 0 y %d fotos", a.cfg.MaxPhotos))
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	api := a.sess.Client()
	vehicle, err := vehicleByPlate(ctx, api, *plate)
	if err != nil {
		return err
	}

	facing := camera.FacingBack
	if *front {
		facing = camera.FacingFront
	}
	cam := camera.NewController(camera.NewDirDevice(*frames), camera.WithFacing(facing))
	w := inspection.NewWizard(api, cam, entities.DamagePolicy{RequireNotes: *requireNotes})
	defer w.Cancel(context.Background())

	if err := w.SelectVehicle(vehicle); err != nil {
		return err
	}
	w.LinkServiceOrder(*order)
	if err := w.ToPhotos(); err != nil {
		return err
	}
	if err := capturePhotos(ctx, cam, *photos, a.cfg.MaxPhotos); err != nil {
		return err
	}
	if err := w.ToChecklist(ctx); err != nil {
		return err
	}

	for _, d := range damages {
		if err := w.SetItem(d.area, d.condition, true, d.notes); err != nil {
			return err
		}
	}
	w.SetGeneralNotes(*notes)

	out, err := w.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Inspección %s registrada para %s con %d fotos\n", out.ID, vehicle.Plate, len(out.Photos))
	return nil
}

// capturePhotos takes n frames, confirming each one. Confirm reopens the
// preview by itself while under the cap.
func capturePhotos(ctx context.Context, cam *camera.Controller, n, maxPhotos int) error {
	if n == 0 {
		return nil
	}
	if err := cam.Open(ctx, maxPhotos); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := cam.Capture(ctx); err != nil {
			return err
		}
		if err := cam.Confirm(ctx); err != nil {
			return err
		}
	}
	return nil
}

func vehicleByPlate(ctx context.Context, api *apiclient.Client, plate string) (response.VehicleResponse, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return response.VehicleResponse{}, apiclient.NewValidationError("plate", "indica la placa con -plate")
	}
	return api.GetVehicleByPlate(ctx, plate)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
