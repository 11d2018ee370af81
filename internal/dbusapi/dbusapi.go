// Package dbusapi publishes the desktop toggle on the session bus so panels
// and scripts can drive it and follow its indicator state.
package dbusapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/showdesk/internal/ipc"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	ObjectPath dbus.ObjectPath = "/io/github/showdesk"
	Interface                  = "io.github.showdesk.Desktop"

	signalStateChanged = Interface + ".StateChanged"
)

const introspectXML = `<node>
	<interface name="` + Interface + `">
		<method name="Toggle">
			<arg direction="out" type="s" name="outcome"/>
		</method>
		<method name="HasPendingRestore">
			<arg direction="out" type="b" name="pending"/>
		</method>
		<method name="Status">
			<arg direction="out" type="a{sv}" name="status"/>
		</method>
		<signal name="StateChanged">
			<arg type="b" name="pending"/>
			<arg type="u" name="count"/>
			<arg type="s" name="icon_name"/>
			<arg type="s" name="tooltip"/>
		</signal>
	</interface>` + introspect.IntrospectDataString + `</node>`

// Service is the daemon surface exported on the bus.
type Service interface {
	Toggle(ctx context.Context) (string, error)
	Status(ctx context.Context) (ipc.StatusData, error)
}

// Server owns a bus name and the exported toggle object.
type Server struct {
	conn    *dbus.Conn
	name    string
	service Service
	logger  *slog.Logger
	timeout time.Duration
}

// Start connects to the session bus, exports the object and claims name.
func Start(name string, service Service, logger *slog.Logger) (*Server, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	s := newServer(conn, name, service, logger)
	if err := s.export(); err != nil {
		conn.Close()
		return nil, err
	}

	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to request bus name %s: %w", name, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, fmt.Errorf("bus name %s is already taken", name)
	}

	s.logger.Info("D-Bus service registered", "name", name, "path", ObjectPath)
	return s, nil
}

func newServer(conn *dbus.Conn, name string, service Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		conn:    conn,
		name:    name,
		service: service,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

func (s *Server) export() error {
	if err := s.conn.Export(&object{server: s}, ObjectPath, Interface); err != nil {
		return fmt.Errorf("failed to export %s: %w", Interface, err)
	}
	if err := s.conn.Export(introspect.Introspectable(introspectXML), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspection: %w", err)
	}
	return nil
}

// EmitStateChanged broadcasts the indicator state.
func (s *Server) EmitStateChanged(st ipc.StatusData) error {
	if s.conn == nil {
		return nil
	}
	if err := s.conn.Emit(ObjectPath, signalStateChanged, st.PendingRestore, uint32(st.PendingCount), st.IconName, st.Tooltip); err != nil {
		return fmt.Errorf("failed to emit StateChanged: %w", err)
	}
	return nil
}

// Close releases the bus name and the connection.
func (s *Server) Close() error {
	if s.conn == nil {
		return nil
	}
	if _, err := s.conn.ReleaseName(s.name); err != nil {
		s.logger.Warn("failed to release bus name", "name", s.name, "error", err)
	}
	return s.conn.Close()
}

// object carries the exported methods. godbus exports every method whose
// last return value is *dbus.Error.
type object struct {
	server *Server
}

func (o *object) Toggle() (string, *dbus.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), o.server.timeout)
	defer cancel()

	outcome, err := o.server.service.Toggle(ctx)
	if err != nil {
		o.server.logger.Warn("D-Bus toggle failed", "error", err)
		return "", dbus.MakeFailedError(err)
	}
	return outcome, nil
}

func (o *object) HasPendingRestore() (bool, *dbus.Error) {
	st, err := o.status()
	if err != nil {
		return false, dbus.MakeFailedError(err)
	}
	return st.PendingRestore, nil
}

func (o *object) Status() (map[string]dbus.Variant, *dbus.Error) {
	st, err := o.status()
	if err != nil {
		return nil, dbus.MakeFailedError(err)
	}
	return statusVariants(st), nil
}

func (o *object) status() (ipc.StatusData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), o.server.timeout)
	defer cancel()
	return o.server.service.Status(ctx)
}

func statusVariants(st ipc.StatusData) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"enabled":         dbus.MakeVariant(st.Enabled),
		"pending_restore": dbus.MakeVariant(st.PendingRestore),
		"pending_count":   dbus.MakeVariant(uint32(st.PendingCount)),
		"running":         dbus.MakeVariant(st.Running),
		"action":          dbus.MakeVariant(st.Action),
		"scope":           dbus.MakeVariant(st.Scope),
		"icon_name":       dbus.MakeVariant(st.IconName),
		"tooltip":         dbus.MakeVariant(st.Tooltip),
		"uptime_seconds":  dbus.MakeVariant(st.UptimeSeconds),
	}
}
