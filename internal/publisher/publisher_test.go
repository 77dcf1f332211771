package publisher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg     Config
		wantErr bool
	}{
		"empty config": {
			cfg:     Config{},
			wantErr: true,
		},
		"missing subject prefix": {
			cfg:     Config{URL: "nats://localhost:4222", Encoding: EncodingJSON},
			wantErr: true,
		},
		"unknown encoding": {
			cfg: Config{
				URL:           "nats://localhost:4222",
				SubjectPrefix: "cdc",
				Encoding:      "xml",
			},
			wantErr: true,
		},
		"valid json": {
			cfg: Config{
				URL:           "nats://localhost:4222",
				SubjectPrefix: "cdc",
				Encoding:      EncodingJSON,
				ReconnectWait: time.Second,
			},
		},
		"valid avro": {
			cfg: Config{
				URL:           "nats://localhost:4222",
				SubjectPrefix: "cdc",
				Encoding:      EncodingAvro,
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.cfg.validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestManager_Subject(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m := &Manager{subjectPrefix: "cdc"}
	req.Equal("cdc.acct.customer", m.subject("ACCT.CUSTOMER"))
	req.Equal("cdc.events", m.subject("events"))
}

func TestManager_Name(t *testing.T) {
	t.Parallel()
	require.Equal(t, "NATS Publisher", (&Manager{}).Name())
}
