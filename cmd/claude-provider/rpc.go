package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/proxycast/claude-provider/credential"
	"github.com/proxycast/claude-provider/errors"
	"github.com/proxycast/claude-provider/logger"
	"github.com/proxycast/claude-provider/oauth"
	"github.com/proxycast/claude-provider/provider"
	"github.com/proxycast/claude-provider/validation"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeAppError       = -32000
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

func successResponse(id json.RawMessage, result any) rpcResponse {
	return rpcResponse{JSONRPC: "2.0", Result: result, ID: id}
}

func errorResponse(id json.RawMessage, code int, message string, data any) rpcResponse {
	return rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: code, Message: message, Data: data}, ID: id}
}

// appErrorResponse maps an engine error onto the wire, carrying the
// structured error body as data when available.
func appErrorResponse(id json.RawMessage, err error) rpcResponse {
	if appErr, ok := errors.AsAppError(err); ok {
		return errorResponse(id, codeAppError, appErr.Message, appErr.ToResponse().Error)
	}
	return errorResponse(id, codeAppError, err.Error(), nil)
}

// rpcServer dispatches JSON-RPC requests onto the engine.
type rpcServer struct {
	eng *engine
	log *logger.Logger
}

func newRPCServer(eng *engine) *rpcServer {
	return &rpcServer{
		eng: eng,
		log: eng.log.WithComponent("rpc"),
	}
}

// serveStdio reads line-delimited requests from r and writes one response
// line per request to w. Blank lines are skipped. Returns when r is
// exhausted or the context is canceled.
func (s *rpcServer) serveStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	s.log.Info("serving JSON-RPC over stdio")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	writer := bufio.NewWriter(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handleLine(ctx, line)
		data, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
		if _, err := writer.Write(append(data, '\n')); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (s *rpcServer) handleLine(ctx context.Context, line []byte) rpcResponse {
	var req rpcRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return errorResponse(json.RawMessage("null"), codeParseError, fmt.Sprintf("Parse error: %v", err), nil)
	}
	return s.handle(ctx, req)
}

func (s *rpcServer) handle(ctx context.Context, req rpcRequest) rpcResponse {
	s.log.Debug("handling request", map[string]any{"method": req.Method})

	switch req.Method {
	case "get_info":
		return successResponse(req.ID, pluginInfo())

	case "list_models":
		return successResponse(req.ID, provider.Catalog())

	case "supports_model":
		var params struct {
			Model string `json:"model"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		return successResponse(req.ID, map[string]bool{"supports": provider.SupportsModel(params.Model)})

	case "acquire_credential":
		var params struct {
			Model string `json:"model" validate:"required"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		acquired, err := s.eng.manager.Acquire(ctx, params.Model)
		if err != nil {
			return appErrorResponse(req.ID, err)
		}
		return successResponse(req.ID, acquired)

	case "release_credential":
		var params struct {
			CredentialID string                    `json:"credential_id" validate:"required"`
			Result       credential.ReleaseOutcome `json:"result"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		if err := s.eng.manager.Release(params.CredentialID, params.Result); err != nil {
			return appErrorResponse(req.ID, err)
		}
		return successResponse(req.ID, map[string]any{})

	case "validate_credential":
		var params struct {
			CredentialID string `json:"credential_id" validate:"required"`
			Live         bool   `json:"live"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		if params.Live {
			result, err := s.eng.manager.ValidateLive(ctx, params.CredentialID)
			if err != nil {
				return appErrorResponse(req.ID, err)
			}
			return successResponse(req.ID, result)
		}
		return successResponse(req.ID, s.eng.manager.Validate(params.CredentialID))

	case "refresh_token":
		var params struct {
			CredentialID string `json:"credential_id" validate:"required"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		result, err := s.eng.manager.Refresh(ctx, params.CredentialID)
		if err != nil {
			return appErrorResponse(req.ID, err)
		}
		return successResponse(req.ID, result)

	case "create_credential":
		var params struct {
			AuthType string                `json:"auth_type" validate:"required"`
			Config   credential.Credential `json:"config"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		authType, err := credential.ParseAuthType(params.AuthType)
		if err != nil {
			return appErrorResponse(req.ID, errors.InvalidInput("auth_type", err.Error()))
		}
		id, err := s.eng.manager.Create(authType, &params.Config)
		if err != nil {
			return appErrorResponse(req.ID, err)
		}
		return successResponse(req.ID, map[string]string{"credential_id": id})

	case "generate_oauth_params":
		var params struct {
			IsSetupToken bool `json:"is_setup_token"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		oauthParams, err := oauth.GenerateParams(params.IsSetupToken)
		if err != nil {
			return appErrorResponse(req.ID, err)
		}
		return successResponse(req.ID, oauthParams)

	case "exchange_authorization_code":
		var params struct {
			Code         string `json:"code" validate:"required"`
			CodeVerifier string `json:"code_verifier" validate:"required"`
			State        string `json:"state"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		tokens, err := s.eng.flow.ExchangeCode(ctx, params.Code, params.CodeVerifier, params.State)
		if err != nil {
			return appErrorResponse(req.ID, err)
		}
		return successResponse(req.ID, tokens)

	case "oauth_with_cookie":
		var params struct {
			SessionKey   string `json:"session_key" validate:"required"`
			IsSetupToken bool   `json:"is_setup_token"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		tokens, err := s.eng.flow.AuthorizeWithCookie(ctx, params.SessionKey, params.IsSetupToken)
		if err != nil {
			return appErrorResponse(req.ID, err)
		}
		return successResponse(req.ID, tokens)

	case "transform_request":
		// Requests are already in the upstream's native format.
		var params struct {
			Request json.RawMessage `json:"request"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		return successResponse(req.ID, map[string]any{"request": params.Request})

	case "transform_response":
		var params struct {
			Response json.RawMessage `json:"response"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		return successResponse(req.ID, map[string]any{"response": params.Response})

	case "apply_risk_control":
		// No request shaping is applied for this provider.
		var params struct {
			Request      json.RawMessage `json:"request"`
			CredentialID string          `json:"credential_id"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		return successResponse(req.ID, map[string]any{"request": params.Request})

	case "parse_error":
		var params struct {
			Status int    `json:"status"`
			Body   string `json:"body"`
		}
		if resp, ok := s.decodeParams(req, &params); !ok {
			return resp
		}
		return successResponse(req.ID, provider.ClassifyUpstream(params.Status, params.Body))

	default:
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

// decodeParams unmarshals and validates request params into dst. On failure
// the returned response carries the error and ok is false.
func (s *rpcServer) decodeParams(req rpcRequest, dst any) (rpcResponse, bool) {
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, dst); err != nil {
			return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("Invalid params: %v", err), nil), false
		}
	}
	if err := validation.Struct(dst); err != nil {
		appErr, _ := errors.AsAppError(err)
		return errorResponse(req.ID, codeInvalidParams, appErr.Message, appErr.ToResponse().Error), false
	}
	return rpcResponse{}, true
}
