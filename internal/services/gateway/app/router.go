package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/sdcc-labs/pollnode/grpc/gen/go/nodecontrol"
)

// NodeRouter risolve la zona nel client gRPC del control plane che la gestisce.
type NodeRouter interface {
	Get(zone string) (pb.NodeControlServiceClient, bool)
	Close()
}

// nodeRouter mantiene una connessione gRPC per ogni zona
type nodeRouter struct {
	mu    sync.RWMutex
	conns map[string]*grpc.ClientConn
	clis  map[string]pb.NodeControlServiceClient
}

var _ NodeRouter = (*nodeRouter)(nil)

// NewNodeRouter accetta una stringa tipo "zone1=host1:50051,zone2=host2:50051"
func NewNodeRouter(ctx context.Context, mapStr string) (NodeRouter, error) {
	nr := &nodeRouter{
		conns: make(map[string]*grpc.ClientConn),
		clis:  make(map[string]pb.NodeControlServiceClient),
	}

	pairs := strings.Split(mapStr, ",")
	for _, p := range pairs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid NODE_GRPC_ADDR_MAP entry: %q", p)
		}
		zone, addr := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])

		dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		conn, err := grpc.DialContext(
			dctx,
			addr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithReturnConnectionError(),
		)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("dial %s (%s): %w", zone, addr, err)
		}

		nr.mu.Lock()
		nr.conns[zone] = conn
		nr.clis[zone] = pb.NewNodeControlServiceClient(conn)
		nr.mu.Unlock()
	}
	return nr, nil
}

func (n *nodeRouter) Get(zone string) (pb.NodeControlServiceClient, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	cli, ok := n.clis[zone]
	return cli, ok
}

func (n *nodeRouter) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.conns {
		if c != nil {
			_ = c.Close()
		}
	}
	n.clis = map[string]pb.NodeControlServiceClient{}
	n.conns = map[string]*grpc.ClientConn{}
}
