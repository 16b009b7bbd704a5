package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/tommilligan/on-air/pkg/common"
	"github.com/tommilligan/on-air/pkg/credentials"
	"github.com/tommilligan/on-air/pkg/indicator"
)

const DefaultServer = "http://homeassistant.local:8123/"

// HomeAssistant drives a Home Assistant light entity as the room's indicator,
// using the light.turn_on/light.turn_off services with an explicit RGB color.
type HomeAssistant struct {
	conf         *Configuration
	saveConfFunc func() error
	mutex        sync.RWMutex

	client http.Client
}

func (this *HomeAssistant) Initialize(conf *Configuration, saveConfFunc func() error) error {
	this.conf = conf
	this.saveConfFunc = saveConfFunc

	if err := this.Update(); err != nil {
		return err
	}

	return nil
}

// Update verifies the instance is reachable with the resolved credentials.
func (this *HomeAssistant) Update() error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	rsp, err := this.do("GET", "/api/", nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = rsp.Body.Close()
	}()
	if rsp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d - %s", rsp.StatusCode, rsp.Status)
	}

	return nil
}

func (this *HomeAssistant) SetColor(c indicator.Color) error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	return this.callService("light/turn_on", map[string]any{
		"entity_id": this.conf.EntityId,
		"rgb_color": []uint8{c.Red, c.Green, c.Blue},
	})
}

func (this *HomeAssistant) Off() error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	return this.callService("light/turn_off", map[string]any{
		"entity_id": this.conf.EntityId,
	})
}

func (this *HomeAssistant) callService(service string, payload map[string]any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	rsp, err := this.do("POST", "/api/services/"+service, b)
	if err != nil {
		return err
	}
	defer func() {
		_ = rsp.Body.Close()
	}()
	if rsp.StatusCode != http.StatusOK && rsp.StatusCode != http.StatusCreated {
		return fmt.Errorf("cannot call %s for %s: unexpected status code: %d - %s", service, this.conf.EntityId, rsp.StatusCode, rsp.Status)
	}

	log.With("service", service).
		With("entityId", this.conf.EntityId).
		Debug("Service called.")
	return nil
}

type resolveCredentialsReason uint

const (
	resolveCredentialsReasonDefault resolveCredentialsReason = iota
	resolveCredentialsReasonInvalidToken
)

func (this *HomeAssistant) loadCredentials() (credentials.Credentials, error) {
	var v credentials.Credentials
	if _, err := v.ReadFromStore(); err != nil {
		return credentials.Credentials{}, err
	}

	if v.HomeAssistantServer == "" {
		v.HomeAssistantServer = this.conf.Server
	}
	if v.HomeAssistantToken == "" {
		v.HomeAssistantToken = this.conf.Token
	}

	return v, nil
}

func (this *HomeAssistant) storeCredentials(cred credentials.Credentials) error {
	var stored credentials.Credentials
	if _, err := stored.ReadFromStore(); err != nil {
		return err
	}
	stored.HomeAssistantServer = cred.HomeAssistantServer
	stored.HomeAssistantToken = cred.HomeAssistantToken

	supported, err := stored.WriteToStore()
	if err != nil {
		return err
	}
	if supported {
		return nil
	}

	this.conf.Server = cred.HomeAssistantServer
	this.conf.Token = cred.HomeAssistantToken
	return this.saveConfFunc()
}

func (this *HomeAssistant) resolveCredentials(reason resolveCredentialsReason) (credentials.Credentials, error) {
	fail := func(err error) (credentials.Credentials, error) {
		return credentials.Credentials{}, err
	}

	cred, err := this.loadCredentials()
	if err != nil {
		return fail(err)
	}

	if reason == resolveCredentialsReasonDefault && cred.HomeAssistantServer != "" && cred.HomeAssistantToken != "" {
		return cred, nil
	}

	if reason == resolveCredentialsReasonInvalidToken {
		log.With("server", cred.HomeAssistantServer).
			Error("Home Assistant rejected the long live token.")
	} else {
		log.Info("Server URL and long live token required to access Home Assistant.")
	}

	for {
		cred.HomeAssistantServer = ""
		cred.HomeAssistantToken = ""
		if err := common.RequestStringContentIfRequiredFromTerminal(&cred.HomeAssistantServer, fmt.Sprintf("Server URL (empty = %s)", DefaultServer), true, false); err != nil {
			return fail(fmt.Errorf("cannot request server url: %w", err))
		}
		if cred.HomeAssistantServer == "" {
			cred.HomeAssistantServer = DefaultServer
		}
		if err := common.RequestStringContentIfRequiredFromTerminal(&cred.HomeAssistantToken, "Token", false, true); err != nil {
			return fail(fmt.Errorf("cannot request token: %w", err))
		}

		serverOk, tokenOk, err := this.check(cred)
		if err != nil {
			return fail(err)
		}
		if serverOk && tokenOk {
			if err := this.storeCredentials(cred); err != nil {
				return fail(fmt.Errorf("cannot store credentials: %w", err))
			}
			return cred, nil
		}

		if !serverOk {
			log.With("server", cred.HomeAssistantServer).
				Error("Provided Home Assistant's server URL is invalid.")
		} else {
			log.With("server", cred.HomeAssistantServer).
				Error("Provided Home Assistant's long live token is invalid.")
		}
	}
}

func (this *HomeAssistant) check(cred credentials.Credentials) (serverOk, tokenOk bool, err error) {
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Second*60)
	defer cancelFunc()

	req, err := http.NewRequestWithContext(ctx, "GET", strings.TrimRight(cred.HomeAssistantServer, "/")+"/api/", nil)
	if err != nil {
		return false, false, err
	}
	req.Header.Add("Authorization", "Bearer "+cred.HomeAssistantToken)
	rsp, err := this.client.Do(req)
	if err != nil {
		return false, false, err
	}
	defer func() {
		_ = rsp.Body.Close()
	}()
	switch rsp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true, false, nil
	case http.StatusOK:
		return true, true, nil
	default:
		return false, false, nil
	}
}

func (this *HomeAssistant) do(method, path string, body []byte) (rsp *http.Response, err error) {
	cred, err := this.resolveCredentials(resolveCredentialsReasonDefault)
	if err != nil {
		return nil, err
	}

	do := func() (*http.Response, error) {
		ctx, cancelFunc := context.WithTimeout(context.Background(), time.Second*60)
		defer cancelFunc()

		req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(cred.HomeAssistantServer, "/")+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Add("Authorization", "Bearer "+cred.HomeAssistantToken)
		if body != nil {
			req.Header.Add("Content-Type", "application/json")
		}

		rsp, err = this.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to access %v: %w", req.URL, err)
		}

		return rsp, nil
	}

	for {
		rsp, err = do()
		if err != nil {
			return nil, err
		}

		switch rsp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			_ = rsp.Body.Close()
			if cred, err = this.resolveCredentials(resolveCredentialsReasonInvalidToken); err != nil {
				return nil, err
			}
		default:
			return rsp, nil
		}
	}
}

func (this *HomeAssistant) Dispose() error {
	this.conf = nil
	this.saveConfFunc = nil
	return nil
}

func (this *HomeAssistant) GetType() indicator.Type {
	return indicator.TypeHomeAssistant
}
