package service

import (
	"eggbot/internal/core/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func targetAmountOptions() []domain.Option {
	return []domain.Option{
		{Name: "target", Kind: domain.OptionUser},
		{Name: "amount", Kind: domain.OptionInteger, MinValue: domain.Bound(1), MaxValue: domain.Bound(100)},
	}
}

func TestArgumentResolver_HappyPath(t *testing.T) {
	platform := new(MockPlatform)
	member := &domain.Member{ID: "user123", Username: "eve"}
	platform.On("Member", mock.Anything, "300", "user123").Return(member, nil)

	r := NewArgumentResolver(platform)

	args, err := r.ResolveOptions(t.Context(), "300", targetAmountOptions(), []string{"@user123", "50"})
	require.NoError(t, err)

	got, ok := args.Member("target")
	require.True(t, ok)
	assert.Same(t, member, got)

	amount, ok := args.Int("amount")
	require.True(t, ok)
	assert.Equal(t, int64(50), amount)
}

func TestArgumentResolver_RangeFailure(t *testing.T) {
	platform := new(MockPlatform)
	platform.On("Member", mock.Anything, "300", "user123").Return(&domain.Member{ID: "user123"}, nil)

	r := NewArgumentResolver(platform)

	_, err := r.ResolveOptions(t.Context(), "300", targetAmountOptions(), []string{"@user123", "500"})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "500", validationErr.Token)
	assert.Contains(t, validationErr.Error(), "100")
}

func TestArgumentResolver_Mentions(t *testing.T) {
	tests := []struct {
		name   string
		option domain.Option
		token  string
		setup  func(p *MockPlatform)
		check  func(t *testing.T, args domain.Args)
	}{
		{
			name:   "user mention with nickname marker",
			option: domain.Option{Name: "u", Kind: domain.OptionUser},
			token:  "<@!42>",
			setup: func(p *MockPlatform) {
				p.On("Member", mock.Anything, "300", "42").Return(&domain.Member{ID: "42"}, nil)
			},
			check: func(t *testing.T, args domain.Args) {
				m, ok := args.Member("u")
				require.True(t, ok)
				assert.Equal(t, "42", m.ID)
			},
		},
		{
			name:   "role mention",
			option: domain.Option{Name: "r", Kind: domain.OptionRole},
			token:  "<@&7>",
			setup: func(p *MockPlatform) {
				p.On("Role", mock.Anything, "300", "7").Return(&domain.Role{ID: "7", Name: "mods"}, nil)
			},
			check: func(t *testing.T, args domain.Args) {
				r, ok := args.Role("r")
				require.True(t, ok)
				assert.Equal(t, "mods", r.Name)
			},
		},
		{
			name:   "channel mention of allowed kind",
			option: domain.Option{Name: "c", Kind: domain.OptionChannel, ChannelKinds: []domain.ChannelKind{domain.ChannelGuildText}},
			token:  "<#9>",
			setup: func(p *MockPlatform) {
				p.On("Channel", mock.Anything, "9").Return(&domain.Channel{ID: "9", Kind: domain.ChannelGuildText}, nil)
			},
			check: func(t *testing.T, args domain.Args) {
				c, ok := args.Channel("c")
				require.True(t, ok)
				assert.Equal(t, "9", c.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := new(MockPlatform)
			tt.setup(platform)
			r := NewArgumentResolver(platform)

			args, err := r.ResolveOptions(t.Context(), "300", []domain.Option{tt.option}, []string{tt.token})
			require.NoError(t, err)
			tt.check(t, args)
		})
	}
}

func TestArgumentResolver_ValidationFailures(t *testing.T) {
	tests := []struct {
		name       string
		guildID    string
		options    []domain.Option
		tokens     []string
		setup      func(p *MockPlatform)
		wantReason string
	}{
		{
			name:       "unknown user",
			guildID:    "300",
			options:    []domain.Option{{Name: "u", Kind: domain.OptionUser}},
			tokens:     []string{"@ghost"},
			setup:      func(p *MockPlatform) { p.On("Member", mock.Anything, "300", "ghost").Return(nil, domain.ErrNotFound) },
			wantReason: "is not a valid user",
		},
		{
			name:       "user outside guild",
			options:    []domain.Option{{Name: "u", Kind: domain.OptionUser}},
			tokens:     []string{"@ghost"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is not a valid user",
		},
		{
			name:       "unknown role",
			guildID:    "300",
			options:    []domain.Option{{Name: "r", Kind: domain.OptionRole}},
			tokens:     []string{"<@&1>"},
			setup:      func(p *MockPlatform) { p.On("Role", mock.Anything, "300", "1").Return(nil, nil) },
			wantReason: "is not a valid role",
		},
		{
			name:    "wrong channel kind",
			guildID: "300",
			options: []domain.Option{{Name: "c", Kind: domain.OptionChannel,
				ChannelKinds: []domain.ChannelKind{domain.ChannelGuildVoice}}},
			tokens: []string{"<#9>"},
			setup: func(p *MockPlatform) {
				p.On("Channel", mock.Anything, "9").Return(&domain.Channel{ID: "9", Kind: domain.ChannelGuildText}, nil)
			},
			wantReason: "is not the correct channel type",
		},
		{
			name:       "not a number",
			options:    []domain.Option{{Name: "n", Kind: domain.OptionNumber}},
			tokens:     []string{"abc"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is not a number",
		},
		{
			name:       "NaN within bounds",
			options:    targetAmountOptions()[1:],
			tokens:     []string{"NaN"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is not a number",
		},
		{
			name:       "lower case nan",
			options:    []domain.Option{{Name: "n", Kind: domain.OptionInteger}},
			tokens:     []string{"nan"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is not a number",
		},
		{
			name:       "infinity",
			options:    []domain.Option{{Name: "n", Kind: domain.OptionNumber}},
			tokens:     []string{"-Inf"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is not a number",
		},
		{
			name:       "integer beyond int64",
			options:    []domain.Option{{Name: "n", Kind: domain.OptionInteger}},
			tokens:     []string{"1e30"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is out of range",
		},
		{
			name:       "integer below int64",
			options:    []domain.Option{{Name: "n", Kind: domain.OptionInteger}},
			tokens:     []string{"-1e19"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is out of range",
		},
		{
			name:       "below minimum",
			options:    []domain.Option{{Name: "n", Kind: domain.OptionNumber, MinValue: domain.Bound(1.5)}},
			tokens:     []string{"1"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "must be at least 1.5",
		},
		{
			name:       "missing required",
			options:    []domain.Option{{Name: "n", Kind: domain.OptionNumber, Required: true}},
			setup:      func(_ *MockPlatform) {},
			wantReason: "missing argument",
		},
		{
			name: "unknown sub command",
			options: []domain.Option{
				{Name: "list", Kind: domain.OptionSubcommand},
			},
			tokens:     []string{"remove"},
			setup:      func(_ *MockPlatform) {},
			wantReason: "is not a valid sub command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := new(MockPlatform)
			tt.setup(platform)
			r := NewArgumentResolver(platform)

			_, err := r.ResolveOptions(t.Context(), tt.guildID, tt.options, tt.tokens)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantReason, validationErr.Reason)
		})
	}
}

func TestArgumentResolver_FetchErrorPropagates(t *testing.T) {
	platform := new(MockPlatform)
	platform.On("Member", mock.Anything, "300", "1").Return(nil, errors.New("rate limited"))
	r := NewArgumentResolver(platform)

	_, err := r.ResolveOptions(t.Context(), "300", []domain.Option{{Name: "u", Kind: domain.OptionUser}}, []string{"1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestArgumentResolver_ScalarsAndRest(t *testing.T) {
	r := NewArgumentResolver(new(MockPlatform))
	options := []domain.Option{
		{Name: "loud", Kind: domain.OptionBoolean},
		{Name: "ratio", Kind: domain.OptionNumber},
		{Name: "count", Kind: domain.OptionInteger},
		{Name: "text", Kind: domain.OptionString},
		{Name: "never", Kind: domain.OptionUser},
	}

	args, err := r.ResolveOptions(t.Context(), "", options, []string{"off", "2.5", "3.9", "hello", "big", "world"})
	require.NoError(t, err)

	assert.False(t, args.Bool("loud"))
	ratio, _ := args.Number("ratio")
	assert.InDelta(t, 2.5, ratio, 0.0001)
	count, _ := args.Int("count")
	assert.Equal(t, int64(3), count)
	assert.Equal(t, []string{"hello", "big", "world"}, args.Strings("text"))
	assert.NotContains(t, args, "never")
}

func TestArgumentResolver_OptionalStopsWalk(t *testing.T) {
	r := NewArgumentResolver(new(MockPlatform))
	options := []domain.Option{
		{Name: "sides", Kind: domain.OptionInteger},
		{Name: "count", Kind: domain.OptionInteger},
	}

	args, err := r.ResolveOptions(t.Context(), "", options, []string{"20"})
	require.NoError(t, err)

	assert.Len(t, args, 1)
	sides, ok := args.Int("sides")
	assert.True(t, ok)
	assert.Equal(t, int64(20), sides)
}

func TestArgumentResolver_Truthy(t *testing.T) {
	for token, want := range map[string]bool{
		"true": true, "yes": true, "1": true, "on": true, "anything": true,
		"false": false, "FALSE": false, "0": false, "no": false, "off": false,
	} {
		t.Run(token, func(t *testing.T) {
			assert.Equal(t, want, truthy(token))
		})
	}
}

func TestArgumentResolver_SubCommand(t *testing.T) {
	platform := new(MockPlatform)
	r := NewArgumentResolver(platform)

	// the sibling option "add" would fail on these tokens if it were consulted
	options := []domain.Option{
		{Name: "add", Kind: domain.OptionSubcommand, Options: []domain.Option{
			{Name: "who", Kind: domain.OptionUser, Required: true},
		}},
		{Name: "list", Kind: domain.OptionSubcommand, Options: []domain.Option{
			{Name: "page", Kind: domain.OptionInteger, MinValue: domain.Bound(1)},
		}},
	}

	args, err := r.ResolveOptions(t.Context(), "300", options, []string{"LIST", "2"})
	require.NoError(t, err)

	assert.Equal(t, "list", args.SubCommand())
	page, ok := args.Int("page")
	assert.True(t, ok)
	assert.Equal(t, int64(2), page)
	platform.AssertNotCalled(t, "Member", mock.Anything, mock.Anything, mock.Anything)
}

func TestArgumentResolver_Resolve(t *testing.T) {
	r := NewArgumentResolver(new(MockPlatform))

	parent := &bareCommand{definition: definition("roll", domain.Conf{Options: []domain.Option{
		{Name: "sides", Kind: domain.OptionInteger},
	}})}
	args, err := r.Resolve(t.Context(), parent, guildMessage("!roll 12"))
	require.NoError(t, err)
	sides, _ := args.Int("sides")
	assert.Equal(t, int64(12), sides)

	sub := &bareCommand{definition: definition("tag-add", domain.Conf{IsSubCommand: true, Options: []domain.Option{
		{Name: "text", Kind: domain.OptionString, Required: true},
	}})}
	args, err = r.Resolve(t.Context(), sub, guildMessage("!tag add rules be nice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"rules", "be", "nice"}, args.Strings("text"))

	args, err = r.Resolve(t.Context(), sub, guildMessage("!TAG-ADD rules be nice"))
	require.NoError(t, err)
	assert.Equal(t, []string{"rules", "be", "nice"}, args.Strings("text"))
}

func TestArgumentResolver_LargeNumberStaysFloat(t *testing.T) {
	r := NewArgumentResolver(new(MockPlatform))

	args, err := r.ResolveOptions(t.Context(), "", []domain.Option{{Name: "n", Kind: domain.OptionNumber}}, []string{"1e30"})
	require.NoError(t, err)

	n, ok := args.Number("n")
	require.True(t, ok)
	assert.InDelta(t, 1e30, n, 1e15)
}
