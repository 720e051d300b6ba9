package discovery

import (
	"fmt"
	"net"
	"strconv"

	consul "github.com/hashicorp/consul/api"
)

// Registration describes how a service announces itself to Consul.
type Registration struct {
	ServiceName string
	Address     string
	HTTPPort    int
	GRPCPort    int
	Tags        []string
}

// ID is the instance id used for both register and deregister.
func (r Registration) ID() string {
	return fmt.Sprintf("%s-%s-%d", r.ServiceName, r.Address, r.HTTPPort)
}

// Registrar registers one service instance with a Consul agent.
type Registrar struct {
	client *consul.Client
	reg    Registration
}

// NewRegistrar connects to the Consul agent at address.
func NewRegistrar(address string, reg Registration) (*Registrar, error) {
	cfg := consul.DefaultConfig()
	if address != "" {
		cfg.Address = address
	}

	client, err := consul.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return &Registrar{client: client, reg: reg}, nil
}

// Register announces the instance with a gRPC health check against GRPCPort.
func (r *Registrar) Register() error {
	return r.client.Agent().ServiceRegister(serviceRegistration(r.reg))
}

// Deregister removes the instance from the agent.
func (r *Registrar) Deregister() error {
	return r.client.Agent().ServiceDeregister(r.reg.ID())
}

func serviceRegistration(reg Registration) *consul.AgentServiceRegistration {
	return &consul.AgentServiceRegistration{
		ID:      reg.ID(),
		Name:    reg.ServiceName,
		Address: reg.Address,
		Port:    reg.HTTPPort,
		Tags:    reg.Tags,
		Check: &consul.AgentServiceCheck{
			GRPC:                           net.JoinHostPort(reg.Address, strconv.Itoa(reg.GRPCPort)) + "/" + reg.ServiceName,
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}
