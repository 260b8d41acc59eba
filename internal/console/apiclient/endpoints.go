package apiclient

import (
	"context"
	"net/url"

	request "polarizados_ya/internal/adapter/http/dto/request"
	response "polarizados_ya/internal/adapter/http/dto/response"
)

func (c *Client) Login(ctx context.Context, email, password string) (response.TokenResponse, error) {
	var out response.TokenResponse
	err := c.post(ctx, "/auth/login", request.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, in request.RegisterRequest) (response.TokenResponse, error) {
	var out response.TokenResponse
	err := c.post(ctx, "/auth/register", in, &out)
	return out, err
}

func (c *Client) Me(ctx context.Context) (response.UserResponse, error) {
	var out response.UserResponse
	err := c.get(ctx, "/auth/me", &out)
	return out, err
}

func (c *Client) ListTechnicians(ctx context.Context) ([]response.UserResponse, error) {
	var out []response.UserResponse
	err := c.get(ctx, "/users/technicians", &out)
	return out, err
}

// Vehicles

func (c *Client) CreateVehicle(ctx context.Context, in request.VehicleRequest) (response.VehicleResponse, error) {
	var out response.VehicleResponse
	err := c.post(ctx, "/vehicles", in, &out)
	return out, err
}

func (c *Client) ListVehicles(ctx context.Context, status string) ([]response.VehicleResponse, error) {
	var out []response.VehicleResponse
	err := c.get(ctx, withQuery("/vehicles", "status", status), &out)
	return out, err
}

func (c *Client) GetVehicle(ctx context.Context, id string) (response.VehicleResponse, error) {
	var out response.VehicleResponse
	err := c.get(ctx, "/vehicles/"+url.PathEscape(id), &out)
	return out, err
}

func (c *Client) GetVehicleByPlate(ctx context.Context, plate string) (response.VehicleResponse, error) {
	var out response.VehicleResponse
	err := c.get(ctx, "/vehicles/plate/"+url.PathEscape(plate), &out)
	return out, err
}

func (c *Client) AssignVehicleTechnician(ctx context.Context, vehicleID, technicianID string) error {
	return c.put(ctx, "/vehicles/"+url.PathEscape(vehicleID)+"/assign",
		request.AssignTechnicianRequest{TechnicianID: technicianID}, nil)
}

func (c *Client) UpdateVehicleStatus(ctx context.Context, vehicleID, status string) error {
	return c.put(ctx, "/vehicles/"+url.PathEscape(vehicleID)+"/status", request.StatusRequest{Status: status}, nil)
}

// Appointments

func (c *Client) CreateAppointment(ctx context.Context, in request.AppointmentRequest) (response.AppointmentResponse, error) {
	var out response.AppointmentResponse
	err := c.post(ctx, "/appointments", in, &out)
	return out, err
}

func (c *Client) ListAppointments(ctx context.Context, date string) ([]response.AppointmentResponse, error) {
	var out []response.AppointmentResponse
	err := c.get(ctx, withQuery("/appointments", "date", date), &out)
	return out, err
}

func (c *Client) GetAppointment(ctx context.Context, id string) (response.AppointmentResponse, error) {
	var out response.AppointmentResponse
	err := c.get(ctx, "/appointments/"+url.PathEscape(id), &out)
	return out, err
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) error {
	return c.put(ctx, "/appointments/"+url.PathEscape(id)+"/status", request.StatusRequest{Status: status}, nil)
}

// Inspections

func (c *Client) CreateInspection(ctx context.Context, in request.InspectionRequest) (response.InspectionResponse, error) {
	var out response.InspectionResponse
	err := c.post(ctx, "/inspections", in, &out)
	return out, err
}

func (c *Client) ListInspections(ctx context.Context, vehicleID string) ([]response.InspectionResponse, error) {
	var out []response.InspectionResponse
	err := c.get(ctx, "/inspections/vehicle/"+url.PathEscape(vehicleID), &out)
	return out, err
}

// Quotes

func (c *Client) CreateQuote(ctx context.Context, in request.QuoteRequest) (response.QuoteResponse, error) {
	var out response.QuoteResponse
	err := c.post(ctx, "/quotes", in, &out)
	return out, err
}

func (c *Client) ListQuotes(ctx context.Context) ([]response.QuoteResponse, error) {
	var out []response.QuoteResponse
	err := c.get(ctx, "/quotes", &out)
	return out, err
}

func (c *Client) GetQuote(ctx context.Context, id string) (response.QuoteResponse, error) {
	var out response.QuoteResponse
	err := c.get(ctx, "/quotes/"+url.PathEscape(id), &out)
	return out, err
}

func (c *Client) ApproveQuote(ctx context.Context, id, signatureURL, cedulaPhotoURL string) (response.QuoteResponse, error) {
	q := url.Values{}
	if signatureURL != "" {
		q.Set("signature_url", signatureURL)
	}
	if cedulaPhotoURL != "" {
		q.Set("cedula_photo_url", cedulaPhotoURL)
	}
	path := "/quotes/" + url.PathEscape(id) + "/approve"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out response.QuoteResponse
	err := c.put(ctx, path, nil, &out)
	return out, err
}

// Service orders

func (c *Client) CreateServiceOrder(ctx context.Context, in request.ServiceOrderRequest) (response.ServiceOrderResponse, error) {
	var out response.ServiceOrderResponse
	err := c.post(ctx, "/service-orders", in, &out)
	return out, err
}

func (c *Client) ListServiceOrders(ctx context.Context, status, technicianID string) ([]response.ServiceOrderResponse, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if technicianID != "" {
		q.Set("technician_id", technicianID)
	}
	path := "/service-orders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []response.ServiceOrderResponse
	err := c.get(ctx, path, &out)
	return out, err
}

func (c *Client) GetServiceOrder(ctx context.Context, id string) (response.ServiceOrderResponse, error) {
	var out response.ServiceOrderResponse
	err := c.get(ctx, "/service-orders/"+url.PathEscape(id), &out)
	return out, err
}

func (c *Client) UpdateServiceOrderStatus(ctx context.Context, id, status string) error {
	return c.put(ctx, "/service-orders/"+url.PathEscape(id)+"/status", request.StatusRequest{Status: status}, nil)
}

func (c *Client) AssignServiceOrderTechnician(ctx context.Context, id, technicianID string) error {
	return c.put(ctx, "/service-orders/"+url.PathEscape(id)+"/assign",
		request.AssignTechnicianRequest{TechnicianID: technicianID}, nil)
}

// Notifications and dashboard

func (c *Client) ListNotifications(ctx context.Context) ([]response.NotificationResponse, error) {
	var out []response.NotificationResponse
	err := c.get(ctx, "/notifications", &out)
	return out, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out response.CountResponse
	err := c.get(ctx, "/notifications/unread-count", &out)
	return out.Count, err
}

func (c *Client) DashboardStats(ctx context.Context) (response.DashboardStatsResponse, error) {
	var out response.DashboardStatsResponse
	err := c.get(ctx, "/dashboard/stats", &out)
	return out, err
}

func withQuery(path, key, value string) string {
	if value == "" {
		return path
	}
	return path + "?" + url.Values{key: {value}}.Encode()
}
