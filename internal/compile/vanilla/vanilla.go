// Package vanilla carries the static vanilla command/condition allowlists
// and the JSON resource type alias tables. The lexer driver consults only
// the resource type tables, when validating a `new TYPE(...)` resource
// declaration's TYPE; the command/condition allowlists are not called
// from the lexer driver (its vanilla-function heuristic matches token
// shapes only).
//
// These are small, closed sets known at compile time of this package, so
// plain maps are used rather than reaching for a perfect-hash-set
// library — no such library appears anywhere in the retrieved example
// pack, and a handful of membership checks per file does not warrant one.
package vanilla

// commands is the set of recognized vanilla command names (the first
// token of a command statement).
var commands = map[string]bool{
	"advancement": true, "attribute": true, "bossbar": true, "clear": true,
	"clone": true, "damage": true, "data": true, "datapack": true,
	"debug": true, "defaultgamemode": true, "difficulty": true, "effect": true,
	"enchant": true, "execute": true, "experience": true, "fill": true,
	"fillbiome": true, "forceload": true, "function": true, "gamemode": true,
	"gamerule": true, "give": true, "help": true, "item": true,
	"kill": true, "list": true, "locate": true, "locatebiome": true,
	"loot": true, "me": true, "msg": true, "particle": true,
	"placefeature": true, "playsound": true, "random": true, "ride": true,
	"recipe": true, "reload": true, "return": true, "say": true,
	"schedule": true, "scoreboard": true, "seed": true, "setblock": true,
	"setworldspawn": true, "spawnpoint": true, "spectate": true, "spreadplayers": true,
	"stopsound": true, "summon": true, "tag": true, "team": true,
	"teammsg": true, "teleport": true, "tell": true, "tellraw": true,
	"time": true, "title": true, "tm": true, "tp": true,
	"trigger": true, "w": true, "weather": true, "whitelist": true,
	"worldborder": true, "xp": true,
	"jfr": true, "perf": true, "publish": true, "save-all": true,
	"save-off": true, "save-on": true, "stop": true, "ban": true,
	"ban-ip": true, "banlist": true, "deop": true, "kick": true,
	"op": true, "pardon": true, "pardon-ip": true, "setidletimeout": true,
}

// conditions is the set of recognized `execute if <condition>` argument
// names.
var conditions = map[string]bool{
	"biome": true, "block": true, "blocks": true, "data": true,
	"dimension": true, "entity": true, "function": true, "loaded": true,
	"predicate": true, "score": true,
}

// jsonFileTypes is the set of vanilla JSON resource type directory names
// a `new TYPE(...)` declaration may target directly.
var jsonFileTypes = map[string]bool{
	"advancements": true, "dimension": true, "dimension_type": true,
	"loot_tables": true, "predicates": true, "recipes": true,
	"item_modifiers": true, "structures": true,
	"worldgen/biome": true, "worldgen/configured_carver": true,
	"worldgen/configured_feature": true, "worldgen/configured_surface_builder": true,
	"worldgen/density_function": true, "worldgen/flat_level_generator_preset": true,
	"worldgen/noise": true, "worldgen/noise_settings": true,
	"worldgen/placed_feature": true, "worldgen/processor_list": true,
	"worldgen/structure": true, "worldgen/structure_set": true,
	"worldgen/template_pool": true, "worldgen/world_preset": true,
	"trim_material": true, "trim_pattern": true, "chat_type": true,
	"damage_type": true,
}

// jmcJSONAliases maps a JMC-convenience resource type name to the vanilla
// directory name it's automatically converted to.
var jmcJSONAliases = map[string]string{
	"advancement": "advancements",
	"loot_table":  "loot_tables",
	"structure":   "structures",
	"recipe":      "recipes",
}

// IsCommand reports whether name is a recognized vanilla command.
func IsCommand(name string) bool {
	return commands[name]
}

// IsCondition reports whether name is a recognized `execute if` condition.
func IsCondition(name string) bool {
	return conditions[name]
}

// ResolveJSONFileType returns the vanilla resource directory name for a
// `new TYPE(...)` declaration's TYPE: the type itself if it's already a
// recognized vanilla JSON file type, its alias target if it's a
// recognized JMC convenience alias, or ok=false if TYPE is neither.
func ResolveJSONFileType(typeName string) (vanillaName string, ok bool) {
	if jsonFileTypes[typeName] {
		return typeName, true
	}
	if alias, found := jmcJSONAliases[typeName]; found {
		return alias, true
	}
	return "", false
}
