package analyzer

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/openfroyo/froyo-analyzer/pkg/rpc/pulumirpc"
)

// Client calls a remote analyzer and returns domain types.
type Client struct {
	conn *grpc.ClientConn
	rpc  pulumirpc.AnalyzerClient
}

// Dial creates a client for the analyzer at target. Connections are plaintext
// unless opts supply other transport credentials.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, NewUnavailableError(fmt.Sprintf("failed to create client for %s", target), err)
	}

	return &Client{
		conn: conn,
		rpc:  pulumirpc.NewAnalyzerClient(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Analyze evaluates one resource remotely. Graph context (parent and
// dependencies) is not sent.
func (c *Client) Analyze(ctx context.Context, resource Resource) ([]Diagnostic, error) {
	req, err := ResourceToAnalyzeRequest(&resource)
	if err != nil {
		return nil, err
	}

	resp, err := c.rpc.Analyze(ctx, req)
	if err != nil {
		return nil, fromStatus(err)
	}
	return DiagnosticsFromProto(resp.GetDiagnostics()), nil
}

// AnalyzeStack evaluates a stack remotely.
func (c *Client) AnalyzeStack(ctx context.Context, resources []Resource) ([]Diagnostic, error) {
	pbs, err := ResourcesToProto(resources)
	if err != nil {
		return nil, err
	}

	resp, err := c.rpc.AnalyzeStack(ctx, &pulumirpc.AnalyzeStackRequest{Resources: pbs})
	if err != nil {
		return nil, fromStatus(err)
	}
	return DiagnosticsFromProto(resp.GetDiagnostics()), nil
}

// Info fetches the remote policy catalog.
func (c *Client) Info(ctx context.Context) (*AnalyzerInfo, error) {
	resp, err := c.rpc.GetAnalyzerInfo(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fromStatus(err)
	}
	return AnalyzerInfoFromProto(resp), nil
}

// PluginInfo fetches the remote plugin version.
func (c *Client) PluginInfo(ctx context.Context) (*PluginInfo, error) {
	resp, err := c.rpc.GetPluginInfo(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fromStatus(err)
	}
	return &PluginInfo{Version: resp.GetVersion()}, nil
}
